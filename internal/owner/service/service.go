package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	auditsvc "ownerverify/internal/audit"
	"ownerverify/internal/owner/models"
	"ownerverify/internal/platform/blobstore"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/sentinel"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type OwnerStore interface {
	FindByID(ctx context.Context, ownerID id.OwnerID) (*models.BusinessOwner, error)
}

type DocumentRegistry interface {
	Create(ctx context.Context, doc *models.Document) error
	ListByOwner(ctx context.Context, ownerID id.OwnerID) ([]*models.Document, error)
}

type BlobUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (blobstore.Object, error)
}

type ActivityLogger interface {
	LogEvent(ctx context.Context, ev auditsvc.Event) auditsvc.Result
}

// MaxDocumentSize bounds a single uploaded document.
const MaxDocumentSize = 10 << 20

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Service exposes the owner directory to managers.
type Service struct {
	owners    OwnerStore
	documents DocumentRegistry
	blobs     BlobUploader
	activity  ActivityLogger
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(owners OwnerStore, documents DocumentRegistry, blobs BlobUploader, activity ActivityLogger, opts ...Option) *Service {
	s := &Service{
		owners:    owners,
		documents: documents,
		blobs:     blobs,
		activity:  activity,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadRequest is one document upload.
type UploadRequest struct {
	Category     models.DocumentCategory
	DocumentType string
	FileName     string
	ContentType  string
	Data         []byte
}

func (r UploadRequest) Validate() error {
	if _, err := models.ParseDocumentCategory(string(r.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(r.DocumentType) == "" {
		return dErrors.New(dErrors.CodeValidation, "documentType is required")
	}
	if len(r.Data) == 0 {
		return dErrors.New(dErrors.CodeValidation, "file is empty")
	}
	if len(r.Data) > MaxDocumentSize {
		return dErrors.New(dErrors.CodeValidation, "file exceeds the 10 MiB limit")
	}
	if !allowedContentTypes[r.ContentType] {
		return dErrors.New(dErrors.CodeValidation, "unsupported content type: "+r.ContentType)
	}
	return nil
}

// Get returns the owner with the tax id masked.
func (s *Service) Get(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (*models.BusinessOwner, error) {
	owner, err := s.managed(ctx, ownerID, actorID)
	if err != nil {
		return nil, err
	}
	masked := owner.Masked()
	return &masked, nil
}

func (s *Service) ListDocuments(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) ([]*models.Document, error) {
	if _, err := s.managed(ctx, ownerID, actorID); err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return docs, nil
}

// UploadDocument stores the file and registers it against the owner.
func (s *Service) UploadDocument(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, req UploadRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	category, _ := models.ParseDocumentCategory(string(req.Category))
	if _, err := s.managed(ctx, ownerID, actorID); err != nil {
		return nil, err
	}

	obj, err := s.blobs.Upload(ctx, req.Data, req.ContentType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDependencyFailure, "failed to store document")
	}
	doc := &models.Document{
		ID:           id.NewDocumentID(),
		OwnerID:      ownerID,
		Category:     category,
		DocumentType: strings.TrimSpace(req.DocumentType),
		FileName:     filepath.Base(req.FileName),
		ContentType:  req.ContentType,
		StoragePath:  obj.Path,
		ContentHash:  obj.ContentHash,
		Size:         obj.Size,
		UploadedBy:   actorID,
		UploadedAt:   requestcontext.Now(ctx),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register document")
	}

	s.activity.LogEvent(ctx, auditsvc.Event{
		EntityType:  audit.EntityDocument,
		EntityID:    doc.ID.String(),
		Action:      audit.ActionDocumentUploaded,
		PerformedBy: actorID,
		OwnerID:     &ownerID,
		Details: map[string]any{
			"fileName":     doc.FileName,
			"category":     string(doc.Category),
			"documentType": doc.DocumentType,
			"contentHash":  doc.ContentHash,
		},
	})
	s.logger.InfoContext(ctx, "document uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"owner_id", ownerID.String(),
		"document_id", doc.ID.String(),
	)
	return doc, nil
}

func (s *Service) managed(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (*models.BusinessOwner, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "business owner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business owner")
	}
	if !owner.IsManagedBy(actorID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "business owner not found")
	}
	return owner, nil
}
