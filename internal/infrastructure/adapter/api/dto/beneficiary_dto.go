package dto

import (
	"time"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateBeneficiaryRequest is the API request for enrolling a beneficiary
type CreateBeneficiaryRequest struct {
	NationalID       string `json:"nationalId" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Notes            string `json:"notes"`
	PhotoURL         string `json:"photoUrl"`
}

// UpdateBeneficiaryRequest carries a partial update; absent fields are untouched
type UpdateBeneficiaryRequest struct {
	Name             *string `json:"name"`
	NationalID       *string `json:"nationalId"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
	EmergencyPhone   *string `json:"emergencyPhone"`
	Notes            *string `json:"notes"`
	PhotoURL         *string `json:"photoUrl"`
	Status           *string `json:"status"`
}

// BeneficiaryResponse is the API shape of a beneficiary record
type BeneficiaryResponse struct {
	ID               string    `json:"id"`
	QRCode           string    `json:"qrCode"`
	NationalID       string    `json:"nationalId"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergencyContact,omitempty"`
	EmergencyPhone   string    `json:"emergencyPhone,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	PhotoURL         string    `json:"photoUrl,omitempty"`
	Balance          int64     `json:"balance"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewBeneficiaryResponse maps the entity to its API shape
func NewBeneficiaryResponse(b *entity.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		ID:               b.ID.String(),
		QRCode:           b.QRCode,
		NationalID:       b.NationalID,
		Name:             b.Name,
		Phone:            b.Phone,
		Address:          b.Address,
		EmergencyContact: b.EmergencyContact,
		EmergencyPhone:   b.EmergencyPhone,
		Notes:            b.Notes,
		PhotoURL:         b.PhotoURL,
		Balance:          b.Balance,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// NewBeneficiaryResponses maps a slice of entities
func NewBeneficiaryResponses(items []*entity.Beneficiary) []BeneficiaryResponse {
	out := make([]BeneficiaryResponse, 0, len(items))
	for _, b := range items {
		out = append(out, NewBeneficiaryResponse(b))
	}
	return out
}

// ValidateBeneficiaryResponse is returned by the QR validation endpoint
type ValidateBeneficiaryResponse struct {
	Valid       bool                `json:"valid"`
	Beneficiary BeneficiaryResponse `json:"beneficiary"`
}
