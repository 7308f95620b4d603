package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/logger"
	infraauth "github.com/streetcare/pointpay/internal/infrastructure/auth"
)

func newAuthRouter(t *testing.T, roles ...entity.Role) (*gin.Engine, *infraauth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := infraauth.NewJWTManager("test-secret", time.Hour, clock.NewPlatformTimeProvider())
	log := logger.NewNoopLogger()

	router := gin.New()
	group := router.Group("/", RequireAuth(tokens, log))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		claims := Claims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID.String()})
	})
	return router, tokens
}

func issueToken(t *testing.T, tokens *infraauth.JWTManager, role entity.Role) string {
	t.Helper()
	u, err := entity.NewUser(uuid.New(), "operator1", "hash", "Test User", role, time.Now())
	require.NoError(t, err)
	token, _, err := tokens.Issue(u)
	require.NoError(t, err)
	return token
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	router, tokens := newAuthRouter(t)
	token := issueToken(t, tokens, entity.RoleNGOAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	router, tokens := newAuthRouter(t, entity.RoleSystemAdmin, entity.RoleNGOAdmin)

	// Allowed role passes
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, entity.RoleNGOAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Role outside the allow-list is rejected
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, entity.RoleStore))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
