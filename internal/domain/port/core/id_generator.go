package core

import "github.com/google/uuid"

// IDGenerator produces entity identifiers and scannable QR code strings.
// QR codes have the shape {PREFIX}_{random} and are unique within their
// namespace; the engines assume no further structure.
type IDGenerator interface {
	// NewID returns a fresh entity identifier
	NewID() uuid.UUID
	// BeneficiaryQR returns a new HL_-prefixed QR code string
	BeneficiaryQR() string
	// StoreQR returns a new ST_-prefixed QR code string
	StoreQR() string
}
