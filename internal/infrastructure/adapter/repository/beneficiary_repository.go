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

// BeneficiaryRepository implements the beneficiary contract on the
// key-value store: one hash per record, string indexes for QR code and
// national ID, and a creation-time sorted set for listing
type BeneficiaryRepository struct {
	rdb          *redis.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewBeneficiaryRepository creates a new BeneficiaryRepository instance
func NewBeneficiaryRepository(rdb *redis.Client, timeProvider coreport.TimeProvider, logger coreport.Logger) *BeneficiaryRepository {
	return &BeneficiaryRepository{rdb: rdb, timeProvider: timeProvider, logger: logger}
}

// marshalBeneficiary is the single serialization boundary between the typed
// entity and the stored hash
func marshalBeneficiary(b *entity.Beneficiary) map[string]string {
	return map[string]string{
		"id":                b.ID.String(),
		"qr_code":           b.QRCode,
		"national_id":       b.NationalID,
		"name":              b.Name,
		"phone":             b.Phone,
		"address":           b.Address,
		"emergency_contact": b.EmergencyContact,
		"emergency_phone":   b.EmergencyPhone,
		"notes":             b.Notes,
		"photo_url":         b.PhotoURL,
		"balance":           formatInt(b.Balance),
		"status":            string(b.Status),
		"created_at":        formatTime(b.CreatedAt),
		"updated_at":        formatTime(b.UpdatedAt),
	}
}

func unmarshalBeneficiary(data map[string]string) *entity.Beneficiary {
	return &entity.Beneficiary{
		ID:               parseUUID(data["id"]),
		QRCode:           data["qr_code"],
		NationalID:       data["national_id"],
		Name:             data["name"],
		Phone:            data["phone"],
		Address:          data["address"],
		EmergencyContact: data["emergency_contact"],
		EmergencyPhone:   data["emergency_phone"],
		Notes:            data["notes"],
		PhotoURL:         data["photo_url"],
		Balance:          parseInt(data["balance"]),
		Status:           entity.Status(data["status"]),
		CreatedAt:        parseTime(data["created_at"]),
		UpdatedAt:        parseTime(data["updated_at"]),
	}
}

// GetByID retrieves a beneficiary by ID
func (r *BeneficiaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Beneficiary, error) {
	data, err := r.rdb.HGetAll(ctx, beneficiaryKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrBeneficiaryNotFound
	}
	return unmarshalBeneficiary(data), nil
}

// GetByQRCode resolves a scanned QR code through the dedicated index
func (r *BeneficiaryRepository) GetByQRCode(ctx context.Context, qrCode string) (*entity.Beneficiary, error) {
	idStr, err := getIndex(ctx, r.rdb, beneficiaryQRKey(qrCode), errs.ErrBeneficiaryNotFound)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, parseUUID(idStr))
}

// GetByNationalID resolves a national-ID string through the dedicated index
func (r *BeneficiaryRepository) GetByNationalID(ctx context.Context, nationalID string) (*entity.Beneficiary, error) {
	idStr, err := getIndex(ctx, r.rdb, beneficiaryNationalIDKey(nationalID), errs.ErrBeneficiaryNotFound)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, parseUUID(idStr))
}

// Create writes the primary record and every index in one round trip.
// The national-ID index doubles as the uniqueness guard.
func (r *BeneficiaryRepository) Create(ctx context.Context, b *entity.Beneficiary) error {
	ok, err := r.rdb.SetNX(ctx, beneficiaryNationalIDKey(b.NationalID), b.ID.String(), 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		r.logger.Warn("Beneficiary national ID already registered", map[string]any{
			"national_id": b.NationalID,
		})
		return errs.ErrDuplicateNationalID
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, beneficiaryKey(b.ID), marshalBeneficiary(b))
		pipe.Set(ctx, beneficiaryQRKey(b.QRCode), b.ID.String(), 0)
		pipe.ZAdd(ctx, keyBeneficiaries, redis.Z{Score: score(b.CreatedAt), Member: b.ID.String()})
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Beneficiary created", map[string]any{
		"beneficiary_id": b.ID.String(),
		"qr_code":        b.QRCode,
	})
	return nil
}

// Update merges only the supplied fields and bumps updated_at
func (r *BeneficiaryRepository) Update(ctx context.Context, id uuid.UUID, update persistence.BeneficiaryUpdate) (*entity.Beneficiary, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.NationalID != nil && *update.NationalID != current.NationalID {
		if err := entity.ValidateNationalID(*update.NationalID); err != nil {
			return nil, err
		}
		ok, err := r.rdb.SetNX(ctx, beneficiaryNationalIDKey(*update.NationalID), id.String(), 0).Result()
		if err != nil {
			return nil, storeErr(err)
		}
		if !ok {
			return nil, errs.ErrDuplicateNationalID
		}
		if err := r.rdb.Del(ctx, beneficiaryNationalIDKey(current.NationalID)).Err(); err != nil {
			return nil, storeErr(err)
		}
		fields["national_id"] = *update.NationalID
	}
	if update.Phone != nil {
		if err := entity.ValidateMobile(*update.Phone); err != nil {
			return nil, err
		}
		fields["phone"] = *update.Phone
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}
	if update.EmergencyContact != nil {
		fields["emergency_contact"] = *update.EmergencyContact
	}
	if update.EmergencyPhone != nil {
		fields["emergency_phone"] = *update.EmergencyPhone
	}
	if update.Notes != nil {
		fields["notes"] = *update.Notes
	}
	if update.PhotoURL != nil {
		fields["photo_url"] = *update.PhotoURL
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errs.ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	fields["updated_at"] = formatTime(r.timeProvider.Now())

	if err := r.rdb.HSet(ctx, beneficiaryKey(id), fields).Err(); err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, id)
}

// UpdateBalance persists a new balance. The caller holds the beneficiary
// lock; this write does not re-check it.
func (r *BeneficiaryRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	exists, err := r.rdb.Exists(ctx, beneficiaryKey(id)).Result()
	if err != nil {
		return storeErr(err)
	}
	if exists == 0 {
		return errs.ErrBeneficiaryNotFound
	}

	err = r.rdb.HSet(ctx, beneficiaryKey(id), map[string]string{
		"balance":    formatInt(balance),
		"updated_at": formatTime(r.timeProvider.Now()),
	}).Err()
	if err != nil {
		return storeErr(err)
	}

	r.logger.Debug("Beneficiary balance updated", map[string]any{
		"beneficiary_id": id.String(),
		"balance":        balance,
	})
	return nil
}

// ReissueQRCode swaps the QR index: the old code stops resolving and the new
// one points at the same ID
func (r *BeneficiaryRepository) ReissueQRCode(ctx context.Context, id uuid.UUID, newCode string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, beneficiaryQRKey(current.QRCode))
		pipe.Set(ctx, beneficiaryQRKey(newCode), id.String(), 0)
		pipe.HSet(ctx, beneficiaryKey(id), map[string]string{
			"qr_code":    newCode,
			"updated_at": formatTime(r.timeProvider.Now()),
		})
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("Beneficiary QR code reissued", map[string]any{
		"beneficiary_id": id.String(),
		"old_qr_code":    current.QRCode,
		"new_qr_code":    newCode,
	})
	return nil
}

// SoftDelete marks the beneficiary inactive; the record and indexes remain
func (r *BeneficiaryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	status := entity.StatusInactive
	_, err := r.Update(ctx, id, persistence.BeneficiaryUpdate{Status: &status})
	return err
}

// List returns a page of beneficiaries sorted newest-created-first. A status
// filter forces a full index walk, which is acceptable for administrative
// listing only.
func (r *BeneficiaryRepository) List(ctx context.Context, page, limit int, status *entity.Status) ([]*entity.Beneficiary, int64, error) {
	if status == nil {
		ids, total, err := zrevPage(ctx, r.rdb, keyBeneficiaries, page, limit)
		if err != nil {
			return nil, 0, err
		}
		items, err := r.loadMany(ctx, ids)
		return items, total, err
	}

	allIDs, err := r.rdb.ZRevRange(ctx, keyBeneficiaries, 0, -1).Result()
	if err != nil {
		return nil, 0, storeErr(err)
	}
	all, err := r.loadMany(ctx, allIDs)
	if err != nil {
		return nil, 0, err
	}
	filtered := all[:0]
	for _, b := range all {
		if b.Status == *status {
			filtered = append(filtered, b)
		}
	}
	total := int64(len(filtered))
	start, stop := pageOffsets(page, limit)
	if start >= total {
		return []*entity.Beneficiary{}, total, nil
	}
	if stop >= total {
		stop = total - 1
	}
	return filtered[start : stop+1], total, nil
}

func (r *BeneficiaryRepository) loadMany(ctx context.Context, ids []string) ([]*entity.Beneficiary, error) {
	items := make([]*entity.Beneficiary, 0, len(ids))
	for _, idStr := range ids {
		b, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrBeneficiaryNotFound) {
			// Listing index can briefly outlive a removed record
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, nil
}
