package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	domainerr "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// claimsKey is the gin context key the verified identity is stored under
const claimsKey = "auth_claims"

// RequireAuth validates the Bearer token and stores the verified claims on
// the request context
func RequireAuth(tokens coreport.TokenManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthorized,
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			logger.Warn("Rejected request with invalid token", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthorized,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not in the
// allow-list. Must run after RequireAuth.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeUnauthorized,
				Message: "Authentication required",
			})
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.CodeForbidden,
				Message: "Insufficient role for this operation",
			})
			return
		}
		c.Next()
	}
}

// Claims returns the verified identity stored by RequireAuth, or nil
func Claims(c *gin.Context) *coreport.AuthClaims {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := val.(*coreport.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
