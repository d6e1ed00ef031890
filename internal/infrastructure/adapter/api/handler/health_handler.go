package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/api/dto"
)

// Pinger checks the ledger store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health
type HealthHandler struct {
	pinger Pinger
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(pinger Pinger, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, logger: logger}
}

// Health reports 200 when the store answers a ping and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
