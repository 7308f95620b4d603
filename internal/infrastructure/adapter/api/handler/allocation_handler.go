package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	allocationUseCase "github.com/streetcare/pointpay/internal/domain/usecase/allocation"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/middleware"
)

// AllocationHandler handles credit-issuance HTTP requests
type AllocationHandler struct {
	allocationService *allocationUseCase.Service
	allocations       persistence.AllocationRepository
	logger            coreport.Logger
}

// NewAllocationHandler creates a new allocation handler instance
func NewAllocationHandler(
	allocationService *allocationUseCase.Service,
	allocations persistence.AllocationRepository,
	logger coreport.Logger,
) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		allocations:       allocations,
		logger:            logger,
	}
}

// Create handles POST /allocations. The issuing admin comes from the token.
func (h *AllocationHandler) Create(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	beneficiaryID, err := uuid.Parse(req.BeneficiaryID)
	if err != nil {
		badRequest(c, "Invalid beneficiaryId format")
		return
	}

	adminID := uuid.Nil
	if claims := middleware.Claims(c); claims != nil {
		adminID = claims.UserID
	}

	alloc, err := h.allocationService.Allocate(c.Request.Context(), allocationUseCase.AllocateRequest{
		BeneficiaryID: beneficiaryID,
		AdminID:       adminID,
		Amount:        req.Amount,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAllocationResponse(alloc))
}

// Get handles GET /allocations/:id
func (h *AllocationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	alloc, err := h.allocationService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAllocationResponse(alloc))
}

// List handles GET /allocations
func (h *AllocationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	within, err := parseTimeRange(c)
	if err != nil {
		badRequest(c, "Invalid from/to format")
		return
	}

	items, total, err := h.allocations.ListAll(c.Request.Context(), page, limit, within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewAllocationResponses(items), page, limit, total))
}

// ListByBeneficiary handles GET /beneficiaries/:id/allocations
func (h *AllocationHandler) ListByBeneficiary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)
	within, err := parseTimeRange(c)
	if err != nil {
		badRequest(c, "Invalid from/to format")
		return
	}

	items, total, err := h.allocations.ListByBeneficiary(c.Request.Context(), id, page, limit, within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewAllocationResponses(items), page, limit, total))
}
