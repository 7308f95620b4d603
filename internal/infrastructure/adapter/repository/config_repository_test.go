package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
)

func TestConfigSetAndGet(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewConfigRepository(client, testLogger)
	ctx := context.Background()

	admin := uuid.New()
	cfg := &entity.SystemConfig{
		Key:         entity.ConfigMaxAllocationLimit,
		Value:       "2000",
		Description: "raised for winter campaign",
		UpdatedBy:   admin,
		UpdatedAt:   clk.Now(),
	}
	require.NoError(t, repo.Set(ctx, cfg))

	got, err := repo.Get(ctx, entity.ConfigMaxAllocationLimit)
	require.NoError(t, err)
	assert.Equal(t, "2000", got.Value)
	assert.Equal(t, admin, got.UpdatedBy)
	assert.Equal(t, "raised for winter campaign", got.Description)

	_, err = repo.Get(ctx, "never_set")
	assert.ErrorIs(t, err, errs.ErrConfigNotFound)
}

func TestConfigSetRejectsEmptyKey(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewConfigRepository(client, testLogger)

	err := repo.Set(context.Background(), &entity.SystemConfig{Key: "", Value: "1"})
	assert.ErrorIs(t, err, errs.ErrInvalidConfigKey)
}

func TestConfigGetInt(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewConfigRepository(client, testLogger)
	ctx := context.Background()

	// Unset key falls back
	n, err := repo.GetInt(ctx, entity.ConfigMaxBalanceLimit, entity.DefaultMaxBalanceLimit)
	require.NoError(t, err)
	assert.Equal(t, int64(entity.DefaultMaxBalanceLimit), n)

	// Numeric value wins over the fallback
	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{
		Key:       entity.ConfigMaxBalanceLimit,
		Value:     "15000",
		UpdatedAt: clk.Now(),
	}))
	n, err = repo.GetInt(ctx, entity.ConfigMaxBalanceLimit, entity.DefaultMaxBalanceLimit)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), n)

	// Garbage value falls back instead of failing the caller
	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{
		Key:       entity.ConfigMaxBalanceLimit,
		Value:     "not-a-number",
		UpdatedAt: clk.Now(),
	}))
	n, err = repo.GetInt(ctx, entity.ConfigMaxBalanceLimit, entity.DefaultMaxBalanceLimit)
	require.NoError(t, err)
	assert.Equal(t, int64(entity.DefaultMaxBalanceLimit), n)
}

func TestConfigListAll(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewConfigRepository(client, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{Key: "b_key", Value: "2", UpdatedAt: clk.Now()}))
	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{Key: "a_key", Value: "1", UpdatedAt: clk.Now()}))

	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a_key", items[0].Key)
	assert.Equal(t, "b_key", items[1].Key)
}

func TestConfigSetOverwrites(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewConfigRepository(client, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{Key: "k", Value: "1", UpdatedAt: clk.Now()}))
	require.NoError(t, repo.Set(ctx, &entity.SystemConfig{Key: "k", Value: "2", UpdatedAt: clk.Now()}))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", got.Value)

	// Re-setting must not duplicate the ListAll membership
	items, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
