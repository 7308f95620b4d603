package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

var (
	nationalIDPattern = regexp.MustCompile(`^[A-Z][12]\d{8}$`)
	mobilePattern     = regexp.MustCompile(`^09\d{8}$`)
)

// Beneficiary is an enrolled individual holding a redeemable point balance.
// The balance is mutated only by the transaction engine (debit) and the
// allocation engine (credit); everything else goes through Update.
type Beneficiary struct {
	ID               uuid.UUID
	QRCode           string
	NationalID       string
	Name             string
	Phone            string
	Address          string
	EmergencyContact string
	EmergencyPhone   string
	Notes            string
	PhotoURL         string
	Balance          int64
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBeneficiary creates a beneficiary with a zero balance after validating
// the identity fields
func NewBeneficiary(id uuid.UUID, qrCode, nationalID, name string, now time.Time) (*Beneficiary, error) {
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	if err := ValidateNationalID(nationalID); err != nil {
		return nil, err
	}
	return &Beneficiary{
		ID:         id,
		QRCode:     qrCode,
		NationalID: nationalID,
		Name:       name,
		Balance:    0,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanTransact reports whether the beneficiary may participate in a transaction
func (b *Beneficiary) CanTransact() bool {
	return b.Status == StatusActive
}

// ValidateNationalID checks the national-ID string format (one uppercase
// letter, a gender digit of 1 or 2, then eight digits)
func ValidateNationalID(id string) error {
	if !nationalIDPattern.MatchString(id) {
		return errs.ErrInvalidNationalID
	}
	return nil
}

// ValidateMobile checks the mobile phone format. Empty values are allowed;
// the field is optional.
func ValidateMobile(phone string) error {
	if phone == "" {
		return nil
	}
	if !mobilePattern.MatchString(phone) {
		return errs.ErrInvalidPhone
	}
	return nil
}
