package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
)

// shiftedClock reports the current time offset by a fixed duration
type shiftedClock struct {
	offset time.Duration
}

func (c *shiftedClock) Now() time.Time                  { return time.Now().Add(c.offset) }
func (c *shiftedClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

func testUser(t *testing.T) *entity.User {
	t.Helper()
	u, err := entity.NewUser(uuid.New(), "operator1", "hash", "Test User", entity.RoleNGOAdmin, time.Now())
	require.NoError(t, err)
	return u
}

func TestJWTIssueAndVerify(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, clock.NewPlatformTimeProvider())
	u := testUser(t)

	token, expiresAt, err := mgr.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "operator1", claims.Username)
	assert.Equal(t, entity.RoleNGOAdmin, claims.Role)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	tp := clock.NewPlatformTimeProvider()
	issuer := NewJWTManager("secret-one", time.Hour, tp)
	verifier := NewJWTManager("secret-two", time.Hour, tp)

	token, _, err := issuer.Issue(testUser(t))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestJWTVerifyRejectsExpiredToken(t *testing.T) {
	// Issued two hours in the past with a one-hour expiry
	mgr := NewJWTManager("test-secret", time.Hour, &shiftedClock{offset: -2 * time.Hour})

	token, _, err := mgr.Issue(testUser(t))
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, clock.NewPlatformTimeProvider())

	_, err := mgr.Verify("not.a.token")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = mgr.Verify("")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestJWTDefaultExpiry(t *testing.T) {
	mgr := NewJWTManager("test-secret", 0, clock.NewPlatformTimeProvider())

	_, expiresAt, err := mgr.Issue(testUser(t))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, hasher.Compare(hash, "s3cret-pass"))
	assert.False(t, hasher.Compare(hash, "wrong-pass"))
	assert.False(t, hasher.Compare("not-a-hash", "s3cret-pass"))
}
