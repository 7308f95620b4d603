package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// ProductHandler handles store-product administration HTTP requests
type ProductHandler struct {
	products     persistence.ProductRepository
	stores       persistence.StoreRepository
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewProductHandler creates a new product handler instance
func NewProductHandler(
	products persistence.ProductRepository,
	stores persistence.StoreRepository,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ProductHandler {
	return &ProductHandler{
		products:     products,
		stores:       stores,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles POST /stores/:id/products
func (h *ProductHandler) Create(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	// The owning store must exist; its status does not gate listing products
	if _, err := h.stores.GetByID(c.Request.Context(), storeID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	product, err := entity.NewProduct(
		h.ids.NewID(),
		storeID,
		req.Name,
		req.Points,
		entity.ProductCategory(req.Category),
		h.timeProvider.Now(),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	product.Description = req.Description

	if err := h.products.Create(c.Request.Context(), product); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// ListByStore handles GET /stores/:id/products
func (h *ProductHandler) ListByStore(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	items, total, err := h.products.ListByStore(c.Request.Context(), storeID, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewProductResponses(items), page, limit, total))
}

// Update handles PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	update := persistence.ProductUpdate{
		Name:        req.Name,
		Points:      req.Points,
		Description: req.Description,
	}
	if req.Category != nil {
		cat := entity.ProductCategory(*req.Category)
		update.Category = &cat
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		update.Status = &st
	}

	product, err := h.products.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Delete handles DELETE /products/:id (soft)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
