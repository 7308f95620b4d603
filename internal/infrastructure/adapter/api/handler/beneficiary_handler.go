package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// BeneficiaryHandler handles beneficiary administration HTTP requests
type BeneficiaryHandler struct {
	beneficiaries persistence.BeneficiaryRepository
	ids           coreport.IDGenerator
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewBeneficiaryHandler creates a new beneficiary handler instance
func NewBeneficiaryHandler(
	beneficiaries persistence.BeneficiaryRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *BeneficiaryHandler {
	return &BeneficiaryHandler{
		beneficiaries: beneficiaries,
		ids:           ids,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Create handles POST /beneficiaries
func (h *BeneficiaryHandler) Create(c *gin.Context) {
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	beneficiary, err := entity.NewBeneficiary(
		h.ids.NewID(),
		h.ids.BeneficiaryQR(),
		req.NationalID,
		req.Name,
		h.timeProvider.Now(),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := entity.ValidateMobile(req.Phone); err != nil {
		respondError(c, h.logger, err)
		return
	}
	beneficiary.Phone = req.Phone
	beneficiary.Address = req.Address
	beneficiary.EmergencyContact = req.EmergencyContact
	beneficiary.EmergencyPhone = req.EmergencyPhone
	beneficiary.Notes = req.Notes
	beneficiary.PhotoURL = req.PhotoURL

	if err := h.beneficiaries.Create(c.Request.Context(), beneficiary); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBeneficiaryResponse(beneficiary))
}

// Get handles GET /beneficiaries/:id
func (h *BeneficiaryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	beneficiary, err := h.beneficiaries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBeneficiaryResponse(beneficiary))
}

// GetByQR handles GET /beneficiaries/qr/:qr
func (h *BeneficiaryHandler) GetByQR(c *gin.Context) {
	beneficiary, err := h.beneficiaries.GetByQRCode(c.Request.Context(), c.Param("qr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBeneficiaryResponse(beneficiary))
}

// List handles GET /beneficiaries
func (h *BeneficiaryHandler) List(c *gin.Context) {
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

	items, total, err := h.beneficiaries.List(c.Request.Context(), page, limit, status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewBeneficiaryResponses(items), page, limit, total))
}

// Update handles PATCH /beneficiaries/:id
func (h *BeneficiaryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	update := persistence.BeneficiaryUpdate{
		Name:             req.Name,
		NationalID:       req.NationalID,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Notes:            req.Notes,
		PhotoURL:         req.PhotoURL,
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		update.Status = &st
	}

	beneficiary, err := h.beneficiaries.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBeneficiaryResponse(beneficiary))
}

// Delete handles DELETE /beneficiaries/:id (soft: status goes inactive, the
// history stays)
func (h *BeneficiaryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.beneficiaries.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReissueQR handles POST /beneficiaries/:id/reissue-qr — a lost card gets a
// fresh code; the old one stops resolving immediately
func (h *BeneficiaryHandler) ReissueQR(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	newCode := h.ids.BeneficiaryQR()
	if err := h.beneficiaries.ReissueQRCode(c.Request.Context(), id, newCode); err != nil {
		respondError(c, h.logger, err)
		return
	}

	beneficiary, err := h.beneficiaries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBeneficiaryResponse(beneficiary))
}
