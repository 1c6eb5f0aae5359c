package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudkit/internal/catalog"
	"crudkit/internal/config"
	apphttp "crudkit/internal/http"
	"crudkit/internal/queue"
	"crudkit/internal/sse"
)

type App struct {
	cfg      *config.Config
	catalog  *catalog.App
	hub      *sse.Hub
	consumer queue.Consumer
	router   *gin.Engine
	server   *http.Server
	logger   *zap.Logger
	wg       sync.WaitGroup
}

func NewApp(cfg *config.Config, def *catalog.App, hub *sse.Hub, consumer queue.Consumer, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		catalog:  def,
		hub:      hub,
		consumer: consumer,
		router:   router,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: apphttp.WithCORS(cfg, router),
		},
		logger: logger,
	}
}

// Start launches the hub and the relay consumer. Run calls it; the Lambda
// entrypoint calls it directly since it never listens.
func (a *App) Start(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run(ctx context.Context) error {
	a.Start(ctx)
	a.logger.Info("http server listening",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("app", a.catalog.Name),
		zap.Int("resources", len(a.catalog.Resources)),
	)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
