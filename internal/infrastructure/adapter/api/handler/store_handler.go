package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// StoreHandler handles partner-store administration HTTP requests
type StoreHandler struct {
	stores       persistence.StoreRepository
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewStoreHandler creates a new store handler instance
func NewStoreHandler(
	stores persistence.StoreRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *StoreHandler {
	return &StoreHandler{
		stores:       stores,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles POST /stores
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	store, err := entity.NewStore(h.ids.NewID(), h.ids.StoreQR(), req.Name, h.timeProvider.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	store.Category = req.Category
	store.Address = req.Address
	store.Phone = req.Phone
	if req.AssociationID != "" {
		assocID, err := uuid.Parse(req.AssociationID)
		if err != nil {
			badRequest(c, "Invalid associationId format")
			return
		}
		store.AssociationID = assocID
	}

	if err := h.stores.Create(c.Request.Context(), store); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewStoreResponse(store))
}

// Get handles GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStoreResponse(store))
}

// List handles GET /stores
func (h *StoreHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	var status *entity.Status
	if s := c.Query("status"); s != "" {
		st := entity.Status(s)
		if !st.IsValid() {
			respondError(c, h.logger, errs.ErrInvalidStatus)
			return
		}
		status = &st
	}

	items, total, err := h.stores.List(c.Request.Context(), page, limit, status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewStoreResponses(items), page, limit, total))
}

// Update handles PATCH /stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	update := persistence.StoreUpdate{
		Name:     req.Name,
		Category: req.Category,
		Address:  req.Address,
		Phone:    req.Phone,
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		update.Status = &st
	}
	if req.AssociationID != nil {
		assocID := uuid.Nil
		if *req.AssociationID != "" {
			var err error
			assocID, err = uuid.Parse(*req.AssociationID)
			if err != nil {
				badRequest(c, "Invalid associationId format")
				return
			}
		}
		update.AssociationID = &assocID
	}

	store, err := h.stores.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStoreResponse(store))
}

// Delete handles DELETE /stores/:id (soft)
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stores.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
