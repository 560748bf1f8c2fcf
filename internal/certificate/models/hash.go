package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"time"

	id "ownerverify/pkg/domain"
)

// HashPayload is the canonical input of the verification hash. Field order is
// part of the hash contract and must not change.
type HashPayload struct {
	VerificationID string `json:"verificationId"`
	OwnerID        string `json:"businessOwnerId"`
	VerifiedBy     string `json:"verifiedBy"`
	VerifiedAt     string `json:"verifiedAt"`
	OwnerName      string `json:"ownerName"`
}

func NewHashPayload(verificationID id.VerificationID, ownerID id.OwnerID, verifiedBy id.ActorID, verifiedAt time.Time, ownerName string) HashPayload {
	return HashPayload{
		VerificationID: verificationID.String(),
		OwnerID:        ownerID.String(),
		VerifiedBy:     verifiedBy.String(),
		VerifiedAt:     verifiedAt.UTC().Format(time.RFC3339Nano),
		OwnerName:      ownerName,
	}
}

// Hash returns the lowercase hex SHA-256 of the canonical JSON encoding.
func (p HashPayload) Hash() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal hash payload: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// IsValidHash reports whether s has the shape of a verification hash.
func IsValidHash(s string) bool {
	return hashPattern.MatchString(s)
}

var numberSpace = big.NewInt(1_000_000)

// GenerateNumber returns PR-BO-<year>-<6 digits>. The suffix is random, so
// uniqueness is enforced by storage.
func GenerateNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, numberSpace)
	if err != nil {
		return "", fmt.Errorf("generate certificate number: %w", err)
	}
	return fmt.Sprintf("PR-BO-%d-%06d", now.Year(), n.Int64()), nil
}

// QRPayload is embedded in the certificate QR code.
type QRPayload struct {
	CertificateNumber string `json:"certificateNumber"`
	VerificationHash  string `json:"verificationHash"`
	ValidationURL     string `json:"validationUrl"`
}

func (q QRPayload) Encode() (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("marshal qr payload: %w", err)
	}
	return string(b), nil
}
