package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudkit/internal/catalog"
	"crudkit/internal/config"
	"crudkit/internal/domain"
	"crudkit/internal/http/dto"
	"crudkit/internal/http/openapi"
	"crudkit/internal/http/resp"
	"crudkit/internal/model"
	"crudkit/internal/service/records"
	"crudkit/internal/sse"
)

// Mount is a resource that can attach its routes to a router.
type Mount interface {
	Name() string
	Paths() []string
	Register(r gin.IRouter)
	Describe(doc *openapi3.T, prefix string) error
}

// Resource serves the CRUD routes of one entity type. I is the create
// payload and P the partial update payload.
type Resource[T model.Entity[T], I model.Input[T], P model.Patch[T]] struct {
	def          catalog.Resource
	svc          *records.Service[T]
	hub          *sse.Hub
	log          *zap.Logger
	defaultLimit int
	heartbeat    time.Duration
}

func NewResource[T model.Entity[T], I model.Input[T], P model.Patch[T]](cfg *config.Config, def catalog.Resource, svc *records.Service[T], hub *sse.Hub, logger *zap.Logger) *Resource[T, I, P] {
	useJSONFieldNames()
	limit := cfg.DefaultPageLimit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	heartbeat := cfg.SSEHeartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &Resource[T, I, P]{
		def:          def,
		svc:          svc,
		hub:          hub,
		log:          logger.With(zap.String("resource", def.Name)),
		defaultLimit: limit,
		heartbeat:    heartbeat,
	}
}

func (h *Resource[T, I, P]) Name() string {
	return h.def.Name
}

func (h *Resource[T, I, P]) Paths() []string {
	return h.def.Paths()
}

func (h *Resource[T, I, P]) Register(r gin.IRouter) {
	for _, path := range h.def.Paths() {
		g := r.Group("/" + path)
		g.GET("", h.List)
		g.GET("/", h.List)
		g.POST("", h.Create)
		g.POST("/", h.Create)
		g.GET("/events", h.Events)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Resource[T, I, P]) Describe(doc *openapi3.T, prefix string) error {
	var record T
	var input I
	return openapi.AddResource(doc, openapi.Resource{
		Name:   h.def.Name,
		Entity: h.def.Entity,
		Tag:    h.def.Tag,
		Prefix: prefix,
		Record: record,
		Input:  input,
	})
}

func (h *Resource[T, I, P]) List(c *gin.Context) {
	offset := queryInt(c, "skip", domain.DefaultOffset)
	limit := queryInt(c, "limit", h.defaultLimit)

	items, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.fail(c, "list", "", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Resource[T, I, P]) Get(c *gin.Context) {
	id := c.Param("id")
	record, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", id, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Resource[T, I, P]) Create(c *gin.Context) {
	var in I
	if body, ok := bindJSON(c, &in); !ok {
		c.JSON(http.StatusBadRequest, body)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), in.Record())
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Resource[T, I, P]) Update(c *gin.Context) {
	id := c.Param("id")
	var patch P
	if body, ok := bindJSON(c, &patch); !ok {
		c.JSON(http.StatusBadRequest, body)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "update", id, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Resource[T, I, P]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", id, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.def.Entity + " deleted successfully"})
}

func (h *Resource[T, I, P]) fail(c *gin.Context, op, id string, err error) {
	if domain.IsNotFound(err) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Detail: h.def.Entity + " not found"})
		return
	}
	h.log.Error(op+" failed", zap.String("id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:   resp.CodeInternalError,
		Detail: "failed to " + op + " " + h.def.Entity,
	})
}

// queryInt falls back to def when the parameter is absent or not a number.
// Out of range values saturate, negative values are clamped later by the store.
func queryInt(c *gin.Context, key string, def int) int {
	v, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return def
	}
	return n
}
