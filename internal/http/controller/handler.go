package controller

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudkit/internal/catalog"
	"crudkit/internal/config"
	"crudkit/internal/http/dto"
	"crudkit/internal/http/openapi"
)

// Handler serves the app-level routes: index, health and the API document.
type Handler struct {
	cfg *config.Config
	app *catalog.App
	doc *openapi3.T
	log *zap.Logger
}

func NewHandler(cfg *config.Config, app *catalog.App, mounts []Mount, logger *zap.Logger) (*Handler, error) {
	doc := openapi.New(app)
	for _, m := range mounts {
		if err := m.Describe(doc, cfg.APIPrefix); err != nil {
			return nil, err
		}
	}
	logger.Debug("api document built", zap.String("app", app.Name), zap.Int("paths", doc.Paths.Len()))
	return &Handler{cfg: cfg, app: app, doc: doc, log: logger}, nil
}

func (h *Handler) Index(c *gin.Context) {
	var endpoints []string
	for _, res := range h.app.Resources {
		for _, p := range res.Paths() {
			endpoints = append(endpoints, h.cfg.APIPrefix+"/"+p)
		}
	}
	version := h.app.Version
	if version == "" {
		version = "1.0.0"
	}
	c.JSON(http.StatusOK, dto.AppInfo{
		Message:     "欢迎使用" + h.app.Title,
		Description: h.app.Description,
		Version:     version,
		Endpoints:   endpoints,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		App:      h.app.Name,
		Instance: h.cfg.InstanceID,
	})
}

func (h *Handler) OpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, h.doc)
}
