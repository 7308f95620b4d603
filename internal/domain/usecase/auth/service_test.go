package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/logger"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/repository"
	infraauth "github.com/streetcare/pointpay/internal/infrastructure/auth"
)

type loginEnv struct {
	service *Service
	users   *repository.UserRepository
}

func newLoginEnv(t *testing.T) *loginEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tp := clock.NewPlatformTimeProvider()
	log := logger.NewNoopLogger()
	users := repository.NewUserRepository(client, tp, log)
	tokens := infraauth.NewJWTManager("test-secret", time.Hour, tp)
	passwords := infraauth.NewBcryptHasher()

	return &loginEnv{
		service: NewService(users, tokens, passwords, tp, log),
		users:   users,
	}
}

func (e *loginEnv) seedUser(t *testing.T, username, password string) *entity.User {
	t.Helper()
	hasher := infraauth.NewBcryptHasher()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	u, err := entity.NewUser(uuid.New(), username, hash, "Test User", entity.RoleNGOAdmin, time.Now())
	require.NoError(t, err)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	env := newLoginEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "operator1", "s3cret-pass")

	result, err := env.service.Login(ctx, "operator1", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, u.ID, result.User.ID)

	// A successful login stamps the account
	got, err := env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.LastLoginAt.IsZero())
}

func TestLoginWrongPassword(t *testing.T) {
	env := newLoginEnv(t)
	env.seedUser(t, "operator1", "s3cret-pass")

	_, err := env.service.Login(context.Background(), "operator1", "wrong-pass")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newLoginEnv(t)

	// Indistinguishable from a wrong password
	_, err := env.service.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestLoginNonActiveAccount(t *testing.T) {
	env := newLoginEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "operator1", "s3cret-pass")

	suspended := entity.StatusSuspended
	_, err := env.users.Update(ctx, u.ID, persistence.UserUpdate{Status: &suspended})
	require.NoError(t, err)

	_, err = env.service.Login(ctx, "operator1", "s3cret-pass")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}
