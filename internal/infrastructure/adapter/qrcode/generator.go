package qrcode

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/port/core"
)

// QR code namespace prefixes. The prefix makes a scanned code
// self-describing so a beneficiary code can never be redeemed as a store
// code or vice versa.
const (
	BeneficiaryPrefix = "HL"
	StorePrefix       = "ST"

	randomHexLen = 12
)

// Generator implements the IDGenerator interface with random UUIDs and
// prefixed hex QR codes
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() core.IDGenerator {
	return &Generator{}
}

// NewID returns a fresh entity identifier
func (g *Generator) NewID() uuid.UUID {
	return uuid.New()
}

// BeneficiaryQR returns a new HL_-prefixed QR code string
func (g *Generator) BeneficiaryQR() string {
	return code(BeneficiaryPrefix)
}

// StoreQR returns a new ST_-prefixed QR code string
func (g *Generator) StoreQR() string {
	return code(StorePrefix)
}

// code renders {PREFIX}_{12 uppercase hex chars}
func code(prefix string) string {
	buf := make([]byte, randomHexLen/2)
	if _, err := rand.Read(buf); err != nil {
		panic("qrcode: crypto/rand unavailable: " + err.Error())
	}
	return prefix + "_" + strings.ToUpper(hex.EncodeToString(buf))
}
