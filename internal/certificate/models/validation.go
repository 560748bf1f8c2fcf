package models

import "time"

// Reasons returned by public validation. They never include owner data.
const (
	ReasonMalformed = "malformed verification hash"
	ReasonNotFound  = "certificate not found"
	ReasonRevoked   = "certificate has been revoked"
	ReasonExpired   = "certificate has expired"
)

// Summary is the only certificate data disclosed to anonymous callers.
type Summary struct {
	CertificateNumber string    `json:"certificateNumber"`
	OwnerName         string    `json:"ownerName"`
	IssuedAt          time.Time `json:"issuedAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
	VerifiedAt        time.Time `json:"verifiedAt"`
}

type Validation struct {
	Valid            bool     `json:"valid"`
	Reason           string   `json:"reason,omitempty"`
	RevocationReason string   `json:"revocationReason,omitempty"`
	Certificate      *Summary `json:"certificate,omitempty"`
}

// Evaluate decides validity at now. Revocation wins over expiry.
func Evaluate(c *Certificate, now time.Time) Validation {
	switch {
	case c == nil:
		return Validation{Reason: ReasonNotFound}
	case c.IsRevoked:
		return Validation{Reason: ReasonRevoked, RevocationReason: c.RevokedReason}
	case c.IsExpired(now):
		return Validation{Reason: ReasonExpired}
	}
	return Validation{
		Valid: true,
		Certificate: &Summary{
			CertificateNumber: c.CertificateNumber,
			OwnerName:         c.OwnerName,
			IssuedAt:          c.IssuedAt,
			ExpiresAt:         c.ExpiresAt,
			VerifiedAt:        c.VerifiedAt,
		},
	}
}

// RenderPayload is handed to the certificate renderer.
type RenderPayload struct {
	CertificateNumber string
	OwnerName         string
	BusinessName      string
	VerifiedAt        time.Time
	IssuedAt          time.Time
	ExpiresAt         time.Time
	VerificationHash  string
	ValidationURL     string
	QRCodeData        string
}
