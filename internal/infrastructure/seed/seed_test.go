package seed

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/logger"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/qrcode"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/repository"
	infraauth "github.com/streetcare/pointpay/internal/infrastructure/auth"
)

type seedEnv struct {
	seeder *Seeder
	users  *repository.UserRepository
	config *repository.ConfigRepository
}

func newSeedEnv(t *testing.T) *seedEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tp := clock.NewPlatformTimeProvider()
	log := logger.NewNoopLogger()
	users := repository.NewUserRepository(client, tp, log)
	config := repository.NewConfigRepository(client, log)

	return &seedEnv{
		seeder: New(users, config, infraauth.NewBcryptHasher(), qrcode.NewGenerator(), tp, log),
		users:  users,
		config: config,
	}
}

func TestSeedCreatesDefaults(t *testing.T) {
	env := newSeedEnv(t)
	ctx := context.Background()

	require.NoError(t, env.seeder.Run(ctx, "admin", "admin1234"))

	admin, err := env.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSystemAdmin, admin.Role)
	assert.True(t, admin.CanLogin())
	assert.NotEqual(t, "admin1234", admin.PasswordHash)

	allocLimit, err := env.config.Get(ctx, entity.ConfigMaxAllocationLimit)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(entity.DefaultMaxAllocationLimit), allocLimit.Value)

	balanceLimit, err := env.config.Get(ctx, entity.ConfigMaxBalanceLimit)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(entity.DefaultMaxBalanceLimit), balanceLimit.Value)
}

func TestSeedIsIdempotent(t *testing.T) {
	env := newSeedEnv(t)
	ctx := context.Background()

	require.NoError(t, env.seeder.Run(ctx, "admin", "admin1234"))
	first, err := env.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	require.NoError(t, env.seeder.Run(ctx, "admin", "different-pass"))
	second, err := env.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}

func TestSeedDoesNotOverrideOperatorLimits(t *testing.T) {
	env := newSeedEnv(t)
	ctx := context.Background()

	require.NoError(t, env.config.Set(ctx, &entity.SystemConfig{
		Key:       entity.ConfigMaxAllocationLimit,
		Value:     "5000",
		UpdatedAt: time.Now(),
	}))

	require.NoError(t, env.seeder.Run(ctx, "admin", "admin1234"))

	got, err := env.config.Get(ctx, entity.ConfigMaxAllocationLimit)
	require.NoError(t, err)
	assert.Equal(t, "5000", got.Value)
}

func TestSeedSkipsAdminWithoutPassword(t *testing.T) {
	env := newSeedEnv(t)
	ctx := context.Background()

	require.NoError(t, env.seeder.Run(ctx, "admin", ""))

	_, err := env.users.GetByUsername(ctx, "admin")
	assert.Error(t, err)
}
