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

// TransactionRepository implements the ledger contract. Records are
// append-only: one hash per record, ordered history indexes scored by
// creation time, and a per-day membership set for daily reporting.
type TransactionRepository struct {
	rdb    *redis.Client
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(rdb *redis.Client, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{rdb: rdb, logger: logger}
}

func marshalTransaction(t *entity.Transaction) map[string]string {
	productID := ""
	if t.ProductID != uuid.Nil {
		productID = t.ProductID.String()
	}
	return map[string]string{
		"id":             t.ID.String(),
		"beneficiary_id": t.BeneficiaryID.String(),
		"beneficiary_qr": t.BeneficiaryQR,
		"store_id":       t.StoreID.String(),
		"store_qr":       t.StoreQR,
		"product_id":     productID,
		"product_name":   t.ProductName,
		"amount":         formatInt(t.Amount),
		"balance_before": formatInt(t.BalanceBefore),
		"balance_after":  formatInt(t.BalanceAfter),
		"status":         string(t.Status),
		"created_at":     formatTime(t.CreatedAt),
	}
}

func unmarshalTransaction(data map[string]string) *entity.Transaction {
	return &entity.Transaction{
		ID:            parseUUID(data["id"]),
		BeneficiaryID: parseUUID(data["beneficiary_id"]),
		BeneficiaryQR: data["beneficiary_qr"],
		StoreID:       parseUUID(data["store_id"]),
		StoreQR:       data["store_qr"],
		ProductID:     parseUUID(data["product_id"]),
		ProductName:   data["product_name"],
		Amount:        parseInt(data["amount"]),
		BalanceBefore: parseInt(data["balance_before"]),
		BalanceAfter:  parseInt(data["balance_after"]),
		Status:        entity.TransactionStatus(data["status"]),
		CreatedAt:     parseTime(data["created_at"]),
	}
}

// Create writes the ledger record and all four history indexes in one round
// trip. Nothing updates a ledger hash afterwards.
func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	member := redis.Z{Score: score(t.CreatedAt), Member: t.ID.String()}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, transactionKey(t.ID), marshalTransaction(t))
		pipe.ZAdd(ctx, keyTransactions, member)
		pipe.ZAdd(ctx, txnsByBeneficiaryKey(t.BeneficiaryID), member)
		pipe.ZAdd(ctx, txnsByStoreKey(t.StoreID), member)
		pipe.SAdd(ctx, txnsDayKey(DayBucket(t.CreatedAt)), t.ID.String())
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Debug("Transaction record written", map[string]any{
		"transaction_id": t.ID.String(),
		"beneficiary_id": t.BeneficiaryID.String(),
		"store_id":       t.StoreID.String(),
		"amount":         t.Amount,
	})
	return nil
}

// GetByID retrieves a ledger record by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	data, err := r.rdb.HGetAll(ctx, transactionKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrTransactionNotFound
	}
	return unmarshalTransaction(data), nil
}

// ListAll returns a page of transactions sorted newest-first, optionally
// bounded by creation time
func (r *TransactionRepository) ListAll(ctx context.Context, page, limit int, within persistence.TimeRange) ([]*entity.Transaction, int64, error) {
	return r.listIndex(ctx, keyTransactions, page, limit, within)
}

// ListByBeneficiary pages one beneficiary's history via its ordered set
func (r *TransactionRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID, page, limit int, within persistence.TimeRange) ([]*entity.Transaction, int64, error) {
	return r.listIndex(ctx, txnsByBeneficiaryKey(beneficiaryID), page, limit, within)
}

// ListByStore pages one store's history via its ordered set
func (r *TransactionRepository) ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int, within persistence.TimeRange) ([]*entity.Transaction, int64, error) {
	return r.listIndex(ctx, txnsByStoreKey(storeID), page, limit, within)
}

// ListDay returns every transaction in a single day bucket
func (r *TransactionRepository) ListDay(ctx context.Context, day string) ([]*entity.Transaction, error) {
	ids, err := r.rdb.SMembers(ctx, txnsDayKey(day)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	return r.loadMany(ctx, ids)
}

func (r *TransactionRepository) listIndex(ctx context.Context, key string, page, limit int, within persistence.TimeRange) ([]*entity.Transaction, int64, error) {
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

func (r *TransactionRepository) loadMany(ctx context.Context, ids []string) ([]*entity.Transaction, error) {
	items := make([]*entity.Transaction, 0, len(ids))
	for _, idStr := range ids {
		t, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrTransactionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}
