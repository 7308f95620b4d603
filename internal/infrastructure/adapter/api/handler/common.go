package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerr "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
)

// respondError maps a domain error to its HTTP status, stable code and
// structured detail payload. Infrastructure faults are logged; domain
// rejections are not (the engines already log the interesting ones).
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	if domainerr.IsInfrastructureError(err) {
		logger.Error("Request failed on infrastructure", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
	}
	c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
		Details: domainerr.ErrorDetails(err),
	})
}

// badRequest rejects a request that failed binding or parameter parsing
func badRequest(c *gin.Context, message string) {
	c.JSON(400, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: message,
	})
}

// parsePagination reads the page/limit query params with the listing defaults
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// parseTimeRange reads the optional from/to query params. Values are either
// RFC3339 timestamps or YYYY-MM-DD dates interpreted in the platform zone
// (a bare "to" date covers the whole day).
func parseTimeRange(c *gin.Context) (persistence.TimeRange, error) {
	var within persistence.TimeRange

	if from := c.Query("from"); from != "" {
		t, err := parseBound(from, false)
		if err != nil {
			return within, err
		}
		within.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseBound(to, true)
		if err != nil {
			return within, err
		}
		within.To = t
	}
	return within, nil
}

func parseBound(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, clock.PlatformZone())
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, nil
}

// parseIDParam reads a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
