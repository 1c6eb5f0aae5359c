package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"crudkit/internal/config"
	"crudkit/internal/http/controller"
	"crudkit/internal/http/dto"
	"crudkit/internal/http/middleware"
	"crudkit/internal/http/resp"
	"crudkit/internal/telemetry"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, mounts []controller.Mount, metrics *telemetry.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		middleware.Metrics(metrics),
	)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Detail: "Not Found"})
	})

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group(cfg.APIPrefix)
	api.GET("/", handler.Index)
	api.GET("/openapi.json", handler.OpenAPI)
	for _, m := range mounts {
		m.Register(api)
	}

	return router
}
