package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// AssociationHandler handles store-association administration HTTP requests
type AssociationHandler struct {
	associations persistence.AssociationRepository
	stores       persistence.StoreRepository
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAssociationHandler creates a new association handler instance
func NewAssociationHandler(
	associations persistence.AssociationRepository,
	stores persistence.StoreRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *AssociationHandler {
	return &AssociationHandler{
		associations: associations,
		stores:       stores,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles POST /associations
func (h *AssociationHandler) Create(c *gin.Context) {
	var req dto.CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	assoc, err := entity.NewAssociation(h.ids.NewID(), req.Name, h.timeProvider.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	assoc.District = req.District
	assoc.ContactName = req.ContactName
	assoc.ContactPhone = req.ContactPhone

	if err := h.associations.Create(c.Request.Context(), assoc); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAssociationResponse(assoc))
}

// Get handles GET /associations/:id
func (h *AssociationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assoc, err := h.associations.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAssociationResponse(assoc))
}

// List handles GET /associations
func (h *AssociationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	items, total, err := h.associations.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewAssociationResponses(items), page, limit, total))
}

// ListStores handles GET /associations/:id/stores
func (h *AssociationHandler) ListStores(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.associations.GetByID(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	items, err := h.stores.ListByAssociation(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.NewStoreResponses(items)})
}

// Update handles PATCH /associations/:id
func (h *AssociationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	update := persistence.AssociationUpdate{
		Name:         req.Name,
		District:     req.District,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		update.Status = &st
	}

	assoc, err := h.associations.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAssociationResponse(assoc))
}

// Delete handles DELETE /associations/:id (soft)
func (h *AssociationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.associations.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
