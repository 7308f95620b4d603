package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	transactionUseCase "github.com/streetcare/pointpay/internal/domain/usecase/transaction"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles redemption HTTP requests
type TransactionHandler struct {
	transactionService *transactionUseCase.Service
	transactions       persistence.TransactionRepository
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionService *transactionUseCase.Service,
	transactions persistence.TransactionRepository,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		transactions:       transactions,
		logger:             logger,
	}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	productID := uuid.Nil
	if req.ProductID != "" {
		var err error
		productID, err = uuid.Parse(req.ProductID)
		if err != nil {
			badRequest(c, "Invalid productId format")
			return
		}
	}

	txn, err := h.transactionService.Create(c.Request.Context(), transactionUseCase.CreateRequest{
		BeneficiaryQR: req.BeneficiaryQR,
		StoreQR:       req.StoreQR,
		ProductID:     productID,
		ProductName:   req.ProductName,
		Amount:        req.Amount,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn))
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// List handles GET /transactions (admin reporting)
func (h *TransactionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	within, err := parseTimeRange(c)
	if err != nil {
		badRequest(c, "Invalid from/to format")
		return
	}

	items, total, err := h.transactions.ListAll(c.Request.Context(), page, limit, within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewTransactionResponses(items), page, limit, total))
}

// ListByBeneficiary handles GET /beneficiaries/:id/transactions
func (h *TransactionHandler) ListByBeneficiary(c *gin.Context) {
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

	items, total, err := h.transactions.ListByBeneficiary(c.Request.Context(), id, page, limit, within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewTransactionResponses(items), page, limit, total))
}

// ListByStore handles GET /stores/:id/transactions
func (h *TransactionHandler) ListByStore(c *gin.Context) {
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

	items, total, err := h.transactions.ListByStore(c.Request.Context(), id, page, limit, within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewTransactionResponses(items), page, limit, total))
}

// ValidateBeneficiary handles GET /validate/beneficiary/:qr — the scanner's
// pre-flight check before showing the payment screen
func (h *TransactionHandler) ValidateBeneficiary(c *gin.Context) {
	beneficiary, valid, err := h.transactionService.ValidateBeneficiary(c.Request.Context(), c.Param("qr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ValidateBeneficiaryResponse{
		Valid:       valid,
		Beneficiary: dto.NewBeneficiaryResponse(beneficiary),
	})
}

// ValidateStore handles GET /validate/store/:qr
func (h *TransactionHandler) ValidateStore(c *gin.Context) {
	store, valid, err := h.transactionService.ValidateStore(c.Request.Context(), c.Param("qr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ValidateStoreResponse{
		Valid: valid,
		Store: dto.NewStoreResponse(store),
	})
}
