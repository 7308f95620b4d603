package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// StoreRepository implements the partner-store contract on the key-value
// store. Cumulative income lives in a hash field mutated only through an
// atomic increment.
type StoreRepository struct {
	rdb          *redis.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewStoreRepository creates a new StoreRepository instance
func NewStoreRepository(rdb *redis.Client, timeProvider coreport.TimeProvider, logger coreport.Logger) *StoreRepository {
	return &StoreRepository{rdb: rdb, timeProvider: timeProvider, logger: logger}
}

func marshalStore(s *entity.Store) map[string]string {
	assoc := ""
	if s.AssociationID != uuid.Nil {
		assoc = s.AssociationID.String()
	}
	return map[string]string{
		"id":             s.ID.String(),
		"qr_code":        s.QRCode,
		"name":           s.Name,
		"category":       s.Category,
		"address":        s.Address,
		"phone":          s.Phone,
		"association_id": assoc,
		"total_income":   formatInt(s.TotalIncome),
		"status":         string(s.Status),
		"created_at":     formatTime(s.CreatedAt),
		"updated_at":     formatTime(s.UpdatedAt),
	}
}

func unmarshalStore(data map[string]string) *entity.Store {
	return &entity.Store{
		ID:            parseUUID(data["id"]),
		QRCode:        data["qr_code"],
		Name:          data["name"],
		Category:      data["category"],
		Address:       data["address"],
		Phone:         data["phone"],
		AssociationID: parseUUID(data["association_id"]),
		TotalIncome:   parseInt(data["total_income"]),
		Status:        entity.Status(data["status"]),
		CreatedAt:     parseTime(data["created_at"]),
		UpdatedAt:     parseTime(data["updated_at"]),
	}
}

// GetByID retrieves a store by ID
func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	data, err := r.rdb.HGetAll(ctx, storeKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrStoreNotFound
	}
	return unmarshalStore(data), nil
}

// GetByQRCode resolves a scanned QR code through the dedicated index
func (r *StoreRepository) GetByQRCode(ctx context.Context, qrCode string) (*entity.Store, error) {
	idStr, err := getIndex(ctx, r.rdb, storeQRKey(qrCode), errs.ErrStoreNotFound)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, parseUUID(idStr))
}

// Create writes the primary record, the QR index, the listing index and the
// association membership entry in one round trip
func (r *StoreRepository) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, storeKey(s.ID), marshalStore(s))
		pipe.Set(ctx, storeQRKey(s.QRCode), s.ID.String(), 0)
		pipe.ZAdd(ctx, keyStores, redis.Z{Score: score(s.CreatedAt), Member: s.ID.String()})
		if s.AssociationID != uuid.Nil {
			pipe.SAdd(ctx, associationStoresKey(s.AssociationID), s.ID.String())
		}
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Store created", map[string]any{
		"store_id": s.ID.String(),
		"qr_code":  s.QRCode,
	})
	return nil
}

// Update merges only the supplied fields. Moving the store between
// associations reconciles both membership sets.
func (r *StoreRepository) Update(ctx context.Context, id uuid.UUID, update persistence.StoreUpdate) (*entity.Store, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errs.ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	fields["updated_at"] = formatTime(r.timeProvider.Now())

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if update.AssociationID != nil && *update.AssociationID != current.AssociationID {
			if current.AssociationID != uuid.Nil {
				pipe.SRem(ctx, associationStoresKey(current.AssociationID), id.String())
			}
			if *update.AssociationID != uuid.Nil {
				pipe.SAdd(ctx, associationStoresKey(*update.AssociationID), id.String())
				pipe.HSet(ctx, storeKey(id), "association_id", update.AssociationID.String())
			} else {
				pipe.HSet(ctx, storeKey(id), "association_id", "")
			}
		}
		pipe.HSet(ctx, storeKey(id), fields)
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, id)
}

// IncrementIncome atomically adds amount to the cumulative income and
// returns the new total. This is the only writer of total_income.
func (r *StoreRepository) IncrementIncome(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	exists, err := r.rdb.Exists(ctx, storeKey(id)).Result()
	if err != nil {
		return 0, storeErr(err)
	}
	if exists == 0 {
		return 0, errs.ErrStoreNotFound
	}

	newTotal, err := r.rdb.HIncrBy(ctx, storeKey(id), "total_income", amount).Result()
	if err != nil {
		return 0, storeErr(err)
	}

	r.logger.Debug("Store income incremented", map[string]any{
		"store_id":     id.String(),
		"amount":       amount,
		"total_income": newTotal,
	})
	return newTotal, nil
}

// SoftDelete marks the store inactive
func (r *StoreRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	status := entity.StatusInactive
	_, err := r.Update(ctx, id, persistence.StoreUpdate{Status: &status})
	return err
}

// List returns a page of stores sorted newest-created-first
func (r *StoreRepository) List(ctx context.Context, page, limit int, status *entity.Status) ([]*entity.Store, int64, error) {
	if status == nil {
		ids, total, err := zrevPage(ctx, r.rdb, keyStores, page, limit)
		if err != nil {
			return nil, 0, err
		}
		items, err := r.loadMany(ctx, ids)
		return items, total, err
	}

	allIDs, err := r.rdb.ZRevRange(ctx, keyStores, 0, -1).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	all, err := r.loadMany(ctx, allIDs)
	if err != nil {
		return nil, 0, err
	}
	filtered := all[:0]
	for _, s := range all {
		if s.Status == *status {
			filtered = append(filtered, s)
		}
	}
	total := int64(len(filtered))
	start, stop := pageOffsets(page, limit)
	if start >= total {
		return []*entity.Store{}, total, nil
	}
	if stop >= total {
		stop = total - 1
	}
	return filtered[start : stop+1], total, nil
}

// ListByAssociation returns the stores in an association's membership set
func (r *StoreRepository) ListByAssociation(ctx context.Context, associationID uuid.UUID) ([]*entity.Store, error) {
	ids, err := r.rdb.SMembers(ctx, associationStoresKey(associationID)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	return r.loadMany(ctx, ids)
}

func (r *StoreRepository) loadMany(ctx context.Context, ids []string) ([]*entity.Store, error) {
	items := make([]*entity.Store, 0, len(ids))
	for _, idStr := range ids {
		s, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrStoreNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}
