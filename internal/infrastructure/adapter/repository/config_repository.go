package repository

import (
	"context"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
)

// ConfigRepository implements system-configuration storage: one hash per key
// plus a membership set so ListAll never scans the keyspace
type ConfigRepository struct {
	rdb    *redis.Client
	logger coreport.Logger
}

// NewConfigRepository creates a new ConfigRepository instance
func NewConfigRepository(rdb *redis.Client, logger coreport.Logger) *ConfigRepository {
	return &ConfigRepository{rdb: rdb, logger: logger}
}

func marshalConfig(cfg *entity.SystemConfig) map[string]string {
	updatedBy := ""
	if cfg.UpdatedBy != uuid.Nil {
		updatedBy = cfg.UpdatedBy.String()
	}
	return map[string]string{
		"key":         cfg.Key,
		"value":       cfg.Value,
		"description": cfg.Description,
		"updated_by":  updatedBy,
		"updated_at":  formatTime(cfg.UpdatedAt),
	}
}

func unmarshalConfig(data map[string]string) *entity.SystemConfig {
	return &entity.SystemConfig{
		Key:         data["key"],
		Value:       data["value"],
		Description: data["description"],
		UpdatedBy:   parseUUID(data["updated_by"]),
		UpdatedAt:   parseTime(data["updated_at"]),
	}
}

// Get retrieves a config entry by key
func (r *ConfigRepository) Get(ctx context.Context, key string) (*entity.SystemConfig, error) {
	data, err := r.rdb.HGetAll(ctx, configKey(key)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrConfigNotFound
	}
	return unmarshalConfig(data), nil
}

// GetInt returns the key's value parsed as an integer, or fallback when the
// key is unset or not numeric. Infrastructure faults still propagate so the
// caller never runs a balance mutation on a silently defaulted limit.
func (r *ConfigRepository) GetInt(ctx context.Context, key string, fallback int64) (int64, error) {
	cfg, err := r.Get(ctx, key)
	if err == errs.ErrConfigNotFound {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(cfg.Value, 10, 64)
	if err != nil {
		r.logger.Warn("Config value is not numeric, using fallback", map[string]any{
			"key":      key,
			"value":    cfg.Value,
			"fallback": fallback,
		})
		return fallback, nil
	}
	return n, nil
}

// Set creates or replaces a config entry
func (r *ConfigRepository) Set(ctx context.Context, cfg *entity.SystemConfig) error {
	if cfg.Key == "" {
		return errs.ErrInvalidConfigKey
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, configKey(cfg.Key), marshalConfig(cfg))
		pipe.SAdd(ctx, keyConfigKeys, cfg.Key)
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Config entry set", map[string]any{
		"key":   cfg.Key,
		"value": cfg.Value,
	})
	return nil
}

// ListAll returns every config entry sorted by key
func (r *ConfigRepository) ListAll(ctx context.Context) ([]*entity.SystemConfig, error) {
	keys, err := r.rdb.SMembers(ctx, keyConfigKeys).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	sort.Strings(keys)

	items := make([]*entity.SystemConfig, 0, len(keys))
	for _, key := range keys {
		cfg, err := r.Get(ctx, key)
		if err == errs.ErrConfigNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, cfg)
	}
	return items, nil
}
