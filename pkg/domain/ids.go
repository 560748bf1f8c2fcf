// Package domain holds the typed identifiers shared across bounded contexts.
//
// Each aggregate gets its own UUID-backed type so an owner id can never be
// passed where a verification id is expected. Parsing happens once, at the
// trust boundary (HTTP handlers, token claims), via the Parse* functions.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "ownerverify/pkg/domain-errors"
)

type (
	OwnerID        uuid.UUID
	DocumentID     uuid.UUID
	VerificationID uuid.UUID
	CertificateID  uuid.UUID
	// ActorID identifies the authenticated manager performing an operation.
	ActorID uuid.UUID
)

const maxIDLength = 64

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is invalid")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is invalid")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is invalid")
	}
	return parsed, nil
}

func ParseOwnerID(s string) (OwnerID, error) {
	u, err := parseUUID(s, "owner_id")
	return OwnerID(u), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID(s, "document_id")
	return DocumentID(u), err
}

func ParseVerificationID(s string) (VerificationID, error) {
	u, err := parseUUID(s, "verification_id")
	return VerificationID(u), err
}

func ParseCertificateID(s string) (CertificateID, error) {
	u, err := parseUUID(s, "certificate_id")
	return CertificateID(u), err
}

func ParseActorID(s string) (ActorID, error) {
	u, err := parseUUID(s, "actor_id")
	return ActorID(u), err
}

func (id OwnerID) String() string        { return uuid.UUID(id).String() }
func (id DocumentID) String() string     { return uuid.UUID(id).String() }
func (id VerificationID) String() string { return uuid.UUID(id).String() }
func (id CertificateID) String() string  { return uuid.UUID(id).String() }
func (id ActorID) String() string        { return uuid.UUID(id).String() }

func (id OwnerID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id VerificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CertificateID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ActorID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed ids serialize as plain UUID strings in JSON bodies and map keys.
func (id OwnerID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id DocumentID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id VerificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CertificateID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ActorID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }

func (id *OwnerID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DocumentID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VerificationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CertificateID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ActorID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }

// New* helpers mint fresh random identifiers.
func NewOwnerID() OwnerID               { return OwnerID(uuid.New()) }
func NewDocumentID() DocumentID         { return DocumentID(uuid.New()) }
func NewVerificationID() VerificationID { return VerificationID(uuid.New()) }
func NewCertificateID() CertificateID   { return CertificateID(uuid.New()) }
func NewActorID() ActorID               { return ActorID(uuid.New()) }
