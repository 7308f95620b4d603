package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
)

// HealthHandler reports process and key-value store health
type HealthHandler struct {
	rdb    *redis.Client
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(rdb *redis.Client, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{rdb: rdb, logger: logger}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
		h.logger.Error("Health check failed: store unreachable", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"store":  "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"store":  "ok",
	})
}
