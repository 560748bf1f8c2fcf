package models

import (
	"strings"
	"time"

	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

// DocumentCategory groups documents for the verification breakdown.
type DocumentCategory string

const (
	CategoryIdentity            DocumentCategory = "IDENTITY"
	CategoryAddress             DocumentCategory = "ADDRESS"
	CategoryBusinessAffiliation DocumentCategory = "BUSINESS_AFFILIATION"
	CategoryOther               DocumentCategory = "OTHER"
)

func ParseDocumentCategory(s string) (DocumentCategory, error) {
	switch c := DocumentCategory(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryIdentity, CategoryAddress, CategoryBusinessAffiliation, CategoryOther:
		return c, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "category must be one of IDENTITY, ADDRESS, BUSINESS_AFFILIATION, OTHER")
}

// Document is an uploaded supporting file owned by a business owner.
type Document struct {
	ID           id.DocumentID
	OwnerID      id.OwnerID
	Category     DocumentCategory
	DocumentType string
	FileName     string
	ContentType  string
	StoragePath  string
	ContentHash  string
	Size         int64
	UploadedBy   id.ActorID
	UploadedAt   time.Time
}
