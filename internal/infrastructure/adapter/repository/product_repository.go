package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// ProductRepository implements the product contract; ownership is tracked
// through the per-store membership set
type ProductRepository struct {
	rdb          *redis.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(rdb *redis.Client, timeProvider coreport.TimeProvider, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{rdb: rdb, timeProvider: timeProvider, logger: logger}
}

func marshalProduct(p *entity.Product) map[string]string {
	return map[string]string{
		"id":          p.ID.String(),
		"store_id":    p.StoreID.String(),
		"name":        p.Name,
		"points":      formatInt(p.Points),
		"category":    string(p.Category),
		"description": p.Description,
		"status":      string(p.Status),
		"created_at":  formatTime(p.CreatedAt),
		"updated_at":  formatTime(p.UpdatedAt),
	}
}

func unmarshalProduct(data map[string]string) *entity.Product {
	return &entity.Product{
		ID:          parseUUID(data["id"]),
		StoreID:     parseUUID(data["store_id"]),
		Name:        data["name"],
		Points:      parseInt(data["points"]),
		Category:    entity.ProductCategory(data["category"]),
		Description: data["description"],
		Status:      entity.Status(data["status"]),
		CreatedAt:   parseTime(data["created_at"]),
		UpdatedAt:   parseTime(data["updated_at"]),
	}
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	data, err := r.rdb.HGetAll(ctx, productKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrProductNotFound
	}
	return unmarshalProduct(data), nil
}

// Create writes the primary record and the owning store's membership entry
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, productKey(p.ID), marshalProduct(p))
		pipe.SAdd(ctx, storeProductsKey(p.StoreID), p.ID.String())
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Product created", map[string]any{
		"product_id": p.ID.String(),
		"store_id":   p.StoreID.String(),
	})
	return nil
}

// Update merges only the supplied fields and bumps updated_at
func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, update persistence.ProductUpdate) (*entity.Product, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Points != nil {
		if *update.Points <= 0 {
			return nil, errs.ErrInvalidAmount
		}
		fields["points"] = formatInt(*update.Points)
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return nil, errs.ErrInvalidCategory
		}
		fields["category"] = string(*update.Category)
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errs.ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	fields["updated_at"] = formatTime(r.timeProvider.Now())

	if err := r.rdb.HSet(ctx, productKey(id), fields).Err(); err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks the product inactive so it stops being transactable while
// historical name snapshots stay meaningful
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	status := entity.StatusInactive
	_, err := r.Update(ctx, id, persistence.ProductUpdate{Status: &status})
	return err
}

// ListByStore returns a page of the store's products sorted newest-created-first
func (r *ProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int) ([]*entity.Product, int64, error) {
	ids, err := r.rdb.SMembers(ctx, storeProductsKey(storeID)).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}

	items := make([]*entity.Product, 0, len(ids))
	for _, idStr := range ids {
		p, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	start, stop := pageOffsets(page, limit)
	if start >= total {
		return []*entity.Product{}, total, nil
	}
	if stop >= total {
		stop = total - 1
	}
	return items[start : stop+1], total, nil
}
