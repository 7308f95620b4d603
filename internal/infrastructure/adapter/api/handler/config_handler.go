package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/middleware"
)

// ConfigHandler handles system-configuration HTTP requests
type ConfigHandler struct {
	config       persistence.ConfigRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewConfigHandler creates a new config handler instance
func NewConfigHandler(
	config persistence.ConfigRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ConfigHandler {
	return &ConfigHandler{config: config, timeProvider: timeProvider, logger: logger}
}

// Get handles GET /config/:key
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.config.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConfigResponse(cfg))
}

// List handles GET /config
func (h *ConfigHandler) List(c *gin.Context) {
	items, err := h.config.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.NewConfigResponses(items)})
}

// Set handles PUT /config/:key. The writing admin comes from the token.
func (h *ConfigHandler) Set(c *gin.Context) {
	var req dto.SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	updatedBy := uuid.Nil
	if claims := middleware.Claims(c); claims != nil {
		updatedBy = claims.UserID
	}

	cfg := &entity.SystemConfig{
		Key:         c.Param("key"),
		Value:       req.Value,
		Description: req.Description,
		UpdatedBy:   updatedBy,
		UpdatedAt:   h.timeProvider.Now(),
	}
	if err := h.config.Set(c.Request.Context(), cfg); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConfigResponse(cfg))
}
