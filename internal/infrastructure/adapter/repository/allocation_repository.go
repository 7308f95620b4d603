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

// AllocationRepository implements the credit-issuance ledger contract,
// mirroring the transaction ledger layout
type AllocationRepository struct {
	rdb    *redis.Client
	logger coreport.Logger
}

// NewAllocationRepository creates a new AllocationRepository instance
func NewAllocationRepository(rdb *redis.Client, logger coreport.Logger) *AllocationRepository {
	return &AllocationRepository{rdb: rdb, logger: logger}
}

func marshalAllocation(a *entity.Allocation) map[string]string {
	admin := ""
	if a.AdminID != uuid.Nil {
		admin = a.AdminID.String()
	}
	return map[string]string{
		"id":             a.ID.String(),
		"beneficiary_id": a.BeneficiaryID.String(),
		"admin_id":       admin,
		"amount":         formatInt(a.Amount),
		"balance_before": formatInt(a.BalanceBefore),
		"balance_after":  formatInt(a.BalanceAfter),
		"notes":          a.Notes,
		"created_at":     formatTime(a.CreatedAt),
	}
}

func unmarshalAllocation(data map[string]string) *entity.Allocation {
	return &entity.Allocation{
		ID:            parseUUID(data["id"]),
		BeneficiaryID: parseUUID(data["beneficiary_id"]),
		AdminID:       parseUUID(data["admin_id"]),
		Amount:        parseInt(data["amount"]),
		BalanceBefore: parseInt(data["balance_before"]),
		BalanceAfter:  parseInt(data["balance_after"]),
		Notes:         data["notes"],
		CreatedAt:     parseTime(data["created_at"]),
	}
}

// Create writes the ledger record and its history indexes in one round trip
func (r *AllocationRepository) Create(ctx context.Context, a *entity.Allocation) error {
	member := redis.Z{Score: score(a.CreatedAt), Member: a.ID.String()}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, allocationKey(a.ID), marshalAllocation(a))
		pipe.ZAdd(ctx, keyAllocations, member)
		pipe.ZAdd(ctx, allocsByBeneficiaryKey(a.BeneficiaryID), member)
		pipe.SAdd(ctx, allocsDayKey(DayBucket(a.CreatedAt)), a.ID.String())
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Debug("Allocation record written", map[string]any{
		"allocation_id":  a.ID.String(),
		"beneficiary_id": a.BeneficiaryID.String(),
		"amount":         a.Amount,
	})
	return nil
}

// GetByID retrieves a ledger record by ID
func (r *AllocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Allocation, error) {
	data, err := r.rdb.HGetAll(ctx, allocationKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrAllocationNotFound
	}
	return unmarshalAllocation(data), nil
}

// ListAll returns a page of allocations sorted newest-first, optionally
// bounded by creation time
func (r *AllocationRepository) ListAll(ctx context.Context, page, limit int, within persistence.TimeRange) ([]*entity.Allocation, int64, error) {
	return r.listIndex(ctx, keyAllocations, page, limit, within)
}

// ListByBeneficiary pages one beneficiary's allocations via its ordered set
func (r *AllocationRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID, page, limit int, within persistence.TimeRange) ([]*entity.Allocation, int64, error) {
	return r.listIndex(ctx, allocsByBeneficiaryKey(beneficiaryID), page, limit, within)
}

func (r *AllocationRepository) listIndex(ctx context.Context, key string, page, limit int, within persistence.TimeRange) ([]*entity.Allocation, int64, error) {
	var (
		ids   []string
		total int64
		err   error
	)
	if within.IsZero() {
		ids, total, err = zrevPage(ctx, r.rdb, key, page, limit)
	} else {
		ids, total, err = zrevPageByScore(ctx, r.rdb, key, page, limit, within)
	}
	if err != nil {
		return nil, 0, err
	}
	items, err := r.loadMany(ctx, ids)
	return items, total, err
}

func (r *AllocationRepository) loadMany(ctx context.Context, ids []string) ([]*entity.Allocation, error) {
	items := make([]*entity.Allocation, 0, len(ids))
	for _, idStr := range ids {
		a, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrAllocationNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}
