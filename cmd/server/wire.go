//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"crudkit/internal/app"
	"crudkit/internal/catalog"
	"crudkit/internal/config"
	"crudkit/internal/http"
	"crudkit/internal/http/controller"
	"crudkit/internal/logging"
	"crudkit/internal/queue/rabbitmq"
	"crudkit/internal/resources"
	"crudkit/internal/service/records"
	"crudkit/internal/sse"
	"crudkit/internal/store"
	"crudkit/internal/telemetry"
)

func InitializeApp(cfg *config.Config) (*app.App, func(), error) {
	wire.Build(
		logging.New,
		catalog.FromConfig,
		store.NewBackend,
		sse.NewHub,
		telemetry.NewMetrics,
		rabbitmq.NewPublisher,
		rabbitmq.NewConsumer,
		records.NewNotifier,
		resources.New,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return nil, nil, nil
}
