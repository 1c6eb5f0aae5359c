package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"go.uber.org/zap"

	"crudkit/internal/config"
	"crudkit/internal/telemetry"
)

var (
	adapter *httpadapter.HandlerAdapterV2
	logger  *zap.Logger
)

// init builds the app once per cold start. Records kept in memory live as
// long as the execution environment does.
func init() {
	started := time.Now()
	ctx := context.Background()

	cfg := config.New()
	if _, err := telemetry.Init(ctx, cfg); err != nil {
		log.Fatalf("init telemetry: %v", err)
	}

	app, _, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	app.Start(ctx)

	logger = app.Logger()
	adapter = httpadapter.NewV2(app.Handler())
	logger.Info("lambda cold start completed", zap.Duration("duration", time.Since(started)))
}

func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	res, err := adapter.ProxyWithContext(ctx, req)
	if err != nil {
		logger.Error("lambda proxy failed",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Error(err),
		)
	}
	return res, err
}

func main() {
	lambda.Start(Handler)
}
