package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
	"github.com/Gunvolt24/wb_records/pkg/httpx"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Handler struct {
	service ports.UnitReadService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — timeout <= 0 означает «без собственного дедлайна» (только контекст запроса).
func NewHandler(service ports.UnitReadService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — маршруты чтения выходных юнитов.
// serviceName != "" включает otelgin; staticDir != "" отдаёт статику.
func NewRouter(h *Handler, staticDir, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/units", h.listUnits)
	r.GET("/unit/:id", h.getUnitByID)
	r.GET("/unit/:id/content", h.getUnitContent)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// loadUnit — общий путь для /unit/:id и /unit/:id/content; false — ответ уже записан.
func (h *Handler) loadUnit(c *gin.Context) (*domain.OutputUnit, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return nil, false
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	unit, err := h.service.GetUnit(ctx, id)
	switch {
	case errors.Is(err, domain.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return nil, false
	case err != nil:
		h.log.Errorf(c.Request.Context(), "GetUnit failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	case unit == nil:
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return nil, false
	}
	return unit, true
}

func (h *Handler) getUnitByID(c *gin.Context) {
	unit, ok := h.loadUnit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, unit)
}

// getUnitContent — сырое содержимое юнита с mime.type из атрибутов.
func (h *Handler) getUnitContent(c *gin.Context) {
	unit, ok := h.loadUnit(c)
	if !ok {
		return
	}
	mime := unit.Attributes[domain.AttrMimeType]
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Data(http.StatusOK, mime, unit.Content)
}

func (h *Handler) listUnits(c *gin.Context) {
	rel := domain.Relationship(c.Query("relationship"))
	switch rel {
	case "", domain.RelSuccess, domain.RelParseFailure:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown relationship"})
		return
	}

	limit, offset := httpx.ParseLimitOffset(c, defaultListLimit, maxListLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	units, err := h.service.ListUnits(ctx, rel, limit, offset)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "ListUnits failed rel=%s err=%v", rel, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if units == nil {
		units = []*domain.OutputUnit{}
	}
	c.JSON(http.StatusOK, units)
}
