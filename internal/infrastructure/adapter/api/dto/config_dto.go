package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// SetConfigRequest is the API request for writing a system config entry
type SetConfigRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// ConfigResponse is the API shape of a system config entry
type ConfigResponse struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewConfigResponse maps the entity to its API shape
func NewConfigResponse(cfg *entity.SystemConfig) ConfigResponse {
	updatedBy := ""
	if cfg.UpdatedBy != uuid.Nil {
		updatedBy = cfg.UpdatedBy.String()
	}
	return ConfigResponse{
		Key:         cfg.Key,
		Value:       cfg.Value,
		Description: cfg.Description,
		UpdatedBy:   updatedBy,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

// NewConfigResponses maps a slice of entities
func NewConfigResponses(items []*entity.SystemConfig) []ConfigResponse {
	out := make([]ConfigResponse, 0, len(items))
	for _, cfg := range items {
		out = append(out, NewConfigResponse(cfg))
	}
	return out
}
