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

// UserHandler handles platform-account administration HTTP requests
type UserHandler struct {
	users        persistence.UserRepository
	passwords    coreport.PasswordHasher
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	users persistence.UserRepository,
	passwords coreport.PasswordHasher,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		users:        users,
		passwords:    passwords,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		respondError(c, h.logger, errs.ErrInternalServer)
		return
	}

	user, err := entity.NewUser(
		h.ids.NewID(),
		req.Username,
		hash,
		req.Name,
		entity.Role(req.Role),
		h.timeProvider.Now(),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	user.Email = req.Email
	user.Phone = req.Phone
	if req.StoreID != "" {
		storeID, err := uuid.Parse(req.StoreID)
		if err != nil {
			badRequest(c, "Invalid storeId format")
			return
		}
		user.StoreID = storeID
	}
	if req.AssociationID != "" {
		assocID, err := uuid.Parse(req.AssociationID)
		if err != nil {
			badRequest(c, "Invalid associationId format")
			return
		}
		user.AssociationID = assocID
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// List handles GET /users; an optional role filter uses the role membership set
func (h *UserHandler) List(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		r := entity.Role(role)
		if !r.IsValid() {
			respondError(c, h.logger, errs.ErrInvalidRole)
			return
		}
		items, err := h.users.ListByRole(c.Request.Context(), r)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewListResponse(dto.NewUserResponses(items), 1, len(items), int64(len(items))))
		return
	}

	page, limit := parsePagination(c)
	items, total, err := h.users.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(dto.NewUserResponses(items), page, limit, total))
}

// Update handles PATCH /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	update := persistence.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.Password != nil {
		hash, err := h.passwords.Hash(*req.Password)
		if err != nil {
			respondError(c, h.logger, errs.ErrInternalServer)
			return
		}
		update.PasswordHash = &hash
	}
	if req.Status != nil {
		st := entity.Status(*req.Status)
		update.Status = &st
	}
	if req.StoreID != nil {
		storeID := uuid.Nil
		if *req.StoreID != "" {
			var err error
			storeID, err = uuid.Parse(*req.StoreID)
			if err != nil {
				badRequest(c, "Invalid storeId format")
				return
			}
		}
		update.StoreID = &storeID
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

	user, err := h.users.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id (hard: the record and every index entry go)
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
