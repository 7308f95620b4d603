package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// BeneficiaryUpdate carries a partial update; nil fields are left untouched
type BeneficiaryUpdate struct {
	Name             *string
	NationalID       *string
	Phone            *string
	Address          *string
	EmergencyContact *string
	EmergencyPhone   *string
	Notes            *string
	PhotoURL         *string
	Status           *entity.Status
}

// BeneficiaryRepository defines access to beneficiary records and their
// secondary indexes (QR code and national ID)
type BeneficiaryRepository interface {
	// GetByID retrieves a beneficiary by ID
	//
	// Possible errors:
	// - ErrBeneficiaryNotFound: if no beneficiary has this ID
	// - ErrStoreUnavailable: if the key-value store fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Beneficiary, error)

	// GetByQRCode resolves a scanned QR code to the beneficiary it indexes.
	// For every valid code this returns the same entity GetByID returns for
	// the resolved ID.
	GetByQRCode(ctx context.Context, qrCode string) (*entity.Beneficiary, error)

	// GetByNationalID resolves a national-ID string to its beneficiary
	GetByNationalID(ctx context.Context, nationalID string) (*entity.Beneficiary, error)

	// Create writes the primary record plus the QR and national-ID indexes
	// and the listing index in the same call
	//
	// Possible errors:
	// - ErrDuplicateNationalID: if the national ID is already registered
	Create(ctx context.Context, b *entity.Beneficiary) error

	// Update merges only the supplied fields and bumps UpdatedAt
	Update(ctx context.Context, id uuid.UUID, update BeneficiaryUpdate) (*entity.Beneficiary, error)

	// UpdateBalance persists a new balance. Callers are responsible for
	// holding the beneficiary lock; the repository does not check it.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error

	// ReissueQRCode atomically swaps the QR index: the old code stops
	// resolving, the new one resolves to the same ID
	ReissueQRCode(ctx context.Context, id uuid.UUID, newCode string) error

	// SoftDelete sets the status to inactive; the record and indexes remain
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns a page of beneficiaries sorted newest-created-first along
	// with the total count. A nil status means no filtering.
	List(ctx context.Context, page, limit int, status *entity.Status) ([]*entity.Beneficiary, int64, error)
}
