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

// AssociationRepository implements the store-association contract
type AssociationRepository struct {
	rdb          *redis.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAssociationRepository creates a new AssociationRepository instance
func NewAssociationRepository(rdb *redis.Client, timeProvider coreport.TimeProvider, logger coreport.Logger) *AssociationRepository {
	return &AssociationRepository{rdb: rdb, timeProvider: timeProvider, logger: logger}
}

func marshalAssociation(a *entity.Association) map[string]string {
	return map[string]string{
		"id":            a.ID.String(),
		"name":          a.Name,
		"district":      a.District,
		"contact_name":  a.ContactName,
		"contact_phone": a.ContactPhone,
		"status":        string(a.Status),
		"created_at":    formatTime(a.CreatedAt),
		"updated_at":    formatTime(a.UpdatedAt),
	}
}

func unmarshalAssociation(data map[string]string) *entity.Association {
	return &entity.Association{
		ID:           parseUUID(data["id"]),
		Name:         data["name"],
		District:     data["district"],
		ContactName:  data["contact_name"],
		ContactPhone: data["contact_phone"],
		Status:       entity.Status(data["status"]),
		CreatedAt:    parseTime(data["created_at"]),
		UpdatedAt:    parseTime(data["updated_at"]),
	}
}

// GetByID retrieves an association by ID
func (r *AssociationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Association, error) {
	data, err := r.rdb.HGetAll(ctx, associationKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrAssociationNotFound
	}
	return unmarshalAssociation(data), nil
}

// Create writes the primary record and the listing index
func (r *AssociationRepository) Create(ctx context.Context, a *entity.Association) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, associationKey(a.ID), marshalAssociation(a))
		pipe.ZAdd(ctx, keyAssociations, redis.Z{Score: score(a.CreatedAt), Member: a.ID.String()})
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Association created", map[string]any{
		"association_id": a.ID.String(),
		"name":           a.Name,
	})
	return nil
}

// Update merges only the supplied fields and bumps updated_at
func (r *AssociationRepository) Update(ctx context.Context, id uuid.UUID, update persistence.AssociationUpdate) (*entity.Association, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, errs.ErrInvalidName
		}
		fields["name"] = *update.Name
	}
	if update.District != nil {
		fields["district"] = *update.District
	}
	if update.ContactName != nil {
		fields["contact_name"] = *update.ContactName
	}
	if update.ContactPhone != nil {
		fields["contact_phone"] = *update.ContactPhone
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errs.ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	fields["updated_at"] = formatTime(r.timeProvider.Now())

	if err := r.rdb.HSet(ctx, associationKey(id), fields).Err(); err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks the association inactive; member stores keep their pointer
func (r *AssociationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	status := entity.StatusInactive
	_, err := r.Update(ctx, id, persistence.AssociationUpdate{Status: &status})
	return err
}

// List returns a page of associations sorted newest-created-first
func (r *AssociationRepository) List(ctx context.Context, page, limit int) ([]*entity.Association, int64, error) {
	ids, total, err := zrevPage(ctx, r.rdb, keyAssociations, page, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*entity.Association, 0, len(ids))
	for _, idStr := range ids {
		a, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrAssociationNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
