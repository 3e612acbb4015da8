package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/internal/resource"
	"github.com/gogotex/modelgate/internal/resource/repository"
	"github.com/gogotex/modelgate/internal/resource/service"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/gogotex/modelgate/pkg/metrics"
)

// RegisterResourceRoutes mounts the asset and config endpoints on rg. Callers
// attach authentication to rg beforehand.
func RegisterResourceRoutes(rg gin.IRoutes, assets service.Service[resource.Asset], configs service.Service[resource.Config]) {
	Register(rg, resource.KindAsset, assets)
	Register(rg, resource.KindConfig, configs)
}

// Register mounts GET /<collection>/:modelId and POST /<collection> for one kind.
func Register[T any](rg gin.IRoutes, kind resource.Kind, svc service.Service[T]) {
	h := &resourceHandler[T]{kind: kind, svc: svc}
	rg.GET("/"+kind.Collection()+"/:modelId", h.get)
	rg.POST("/"+kind.Collection(), h.create)
}

type resourceHandler[T any] struct {
	kind resource.Kind
	svc  service.Service[T]
}

func (h *resourceHandler[T]) get(c *gin.Context) {
	modelID := c.Param("modelId")
	d, err := h.svc.Get(c.Request.Context(), modelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.observe("get", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": h.kind.Title() + " not found"})
			return
		}
		h.serverError(c, "get", err)
		return
	}
	h.observe("get", "ok")
	c.JSON(http.StatusOK, d)
}

func (h *resourceHandler[T]) create(c *gin.Context) {
	var d T
	if err := c.ShouldBindJSON(&d); err != nil {
		h.observe("create", "bad_request")
		logger.Debugf("%s create: bad body: %v", h.kind, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &d)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			h.observe("create", "conflict")
			c.JSON(http.StatusConflict, gin.H{"error": h.kind.Title() + " already exists"})
			return
		}
		h.serverError(c, "create", err)
		return
	}
	h.observe("create", "ok")
	c.JSON(http.StatusCreated, created)
}

// serverError hides the cause from the client and keeps it in the log.
func (h *resourceHandler[T]) serverError(c *gin.Context, op string, err error) {
	h.observe(op, "error")
	logger.Errorf("%s %s failed: %v", h.kind, op, err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

func (h *resourceHandler[T]) observe(op, outcome string) {
	metrics.ResourceRequests.WithLabelValues(string(h.kind), op, outcome).Inc()
}
