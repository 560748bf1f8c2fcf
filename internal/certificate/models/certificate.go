package models

import (
	"time"

	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

// Validity is the lifetime of a certificate, counted from the verification date.
const Validity = 365 * 24 * time.Hour

// Certificate is issued once per VERIFIED attempt. Only the revocation fields
// change after issuance.
type Certificate struct {
	ID                id.CertificateID
	VerificationID    id.VerificationID
	OwnerID           id.OwnerID
	CertificateNumber string
	OwnerName         string
	VerifiedAt        time.Time
	IssuedAt          time.Time
	ExpiresAt         time.Time
	DocumentPath      string
	DocumentURL       string
	VerificationHash  string
	ValidationURL     string
	QRCodeData        string
	IssuedBy          id.ActorID

	IsRevoked     bool
	RevokedAt     *time.Time
	RevokedReason string
	RevokedBy     *id.ActorID
}

// IsExpired compares against expiresAt strictly, so a certificate is still
// valid at the exact expiry instant.
func (c *Certificate) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// Revoke is one-way.
func (c *Certificate) Revoke(actor id.ActorID, reason string, now time.Time) error {
	if c.IsRevoked {
		return dErrors.New(dErrors.CodeInvalidState, "certificate is already revoked")
	}
	revokedAt := now
	revokedBy := actor
	c.IsRevoked = true
	c.RevokedAt = &revokedAt
	c.RevokedBy = &revokedBy
	c.RevokedReason = reason
	return nil
}

// Revocation is the mutable part of a certificate.
type Revocation struct {
	IsRevoked     bool
	RevokedAt     *time.Time
	RevokedReason string
	RevokedBy     *id.ActorID
}

// ApplyRevocation overwrites the revocation fields with the stored state.
func (c *Certificate) ApplyRevocation(r Revocation) {
	c.IsRevoked = r.IsRevoked
	c.RevokedAt = r.RevokedAt
	c.RevokedReason = r.RevokedReason
	c.RevokedBy = r.RevokedBy
}

// WithoutRevocation returns a copy holding only the fields fixed at issuance.
func (c Certificate) WithoutRevocation() Certificate {
	c.ApplyRevocation(Revocation{})
	return c
}
