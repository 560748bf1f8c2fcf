package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ownerverify/internal/owner/models"
	"ownerverify/internal/owner/service"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/httputil"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	Get(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (*models.BusinessOwner, error)
	ListDocuments(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) ([]*models.Document, error)
	UploadDocument(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, req service.UploadRequest) (*models.Document, error)
}

type Handler struct {
	owners Service
	logger *slog.Logger
}

func New(owners Service, logger *slog.Logger) *Handler {
	return &Handler{owners: owners, logger: logger}
}

// Register mounts the manager routes. Callers apply authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/owners/{ownerID}", h.handleGetOwner)
	r.Get("/owners/{ownerID}/documents", h.handleListDocuments)
	r.Post("/owners/{ownerID}/documents", h.handleUploadDocument)
}

type OwnerResponse struct {
	ID                           string     `json:"id"`
	FirstName                    string     `json:"firstName"`
	MiddleName                   string     `json:"middleName,omitempty"`
	LastName                     string     `json:"lastName"`
	FullName                     string     `json:"fullName"`
	BusinessName                 string     `json:"businessName,omitempty"`
	Email                        string     `json:"email,omitempty"`
	Phone                        string     `json:"phone,omitempty"`
	TaxID                        string     `json:"taxId,omitempty"`
	VerificationStatus           string     `json:"verificationStatus"`
	CurrentVerificationAttemptID *string    `json:"currentVerificationAttemptId"`
	LastVerifiedAt               *time.Time `json:"lastVerifiedAt"`
	VerificationExpiresAt        *time.Time `json:"verificationExpiresAt"`
	Version                      int        `json:"version"`
}

// ToOwnerResponse renders an owner that has already been masked.
func ToOwnerResponse(o *models.BusinessOwner) OwnerResponse {
	resp := OwnerResponse{
		ID:                    o.ID.String(),
		FirstName:             o.FirstName,
		MiddleName:            o.MiddleName,
		LastName:              o.LastName,
		FullName:              o.FullName(),
		BusinessName:          o.BusinessName,
		Email:                 o.Email,
		Phone:                 o.Phone,
		TaxID:                 o.TaxID,
		VerificationStatus:    string(o.VerificationStatus),
		LastVerifiedAt:        o.LastVerifiedAt,
		VerificationExpiresAt: o.VerificationExpiresAt,
		Version:               o.Version,
	}
	if o.CurrentVerificationAttemptID != nil {
		s := o.CurrentVerificationAttemptID.String()
		resp.CurrentVerificationAttemptID = &s
	}
	return resp
}

type DocumentResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"businessOwnerId"`
	Category     string    `json:"category"`
	DocumentType string    `json:"documentType"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	ContentHash  string    `json:"contentHash"`
	Size         int64     `json:"size"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func toDocumentResponse(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID.String(),
		OwnerID:      d.OwnerID.String(),
		Category:     string(d.Category),
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		ContentHash:  d.ContentHash,
		Size:         d.Size,
		UploadedBy:   d.UploadedBy.String(),
		UploadedAt:   d.UploadedAt,
	}
}

func (h *Handler) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	owner, err := h.owners.Get(ctx, ownerID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "get owner", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ToOwnerResponse(owner))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	docs, err := h.owners.ListDocuments(ctx, ownerID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "list documents", err)
		return
	}
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"documents": out})
}

// handleUploadDocument accepts multipart/form-data with fields category,
// documentType and file.
func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxDocumentSize+(1<<20))
	if err := r.ParseMultipartForm(service.MaxDocumentSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "file exceeds the 10 MiB limit"))
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "file is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read file"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	doc, err := h.owners.UploadDocument(ctx, ownerID, requestcontext.ActorID(ctx), service.UploadRequest{
		Category:     models.DocumentCategory(r.FormValue("category")),
		DocumentType: r.FormValue("documentType"),
		FileName:     header.Filename,
		ContentType:  contentType,
		Data:         data,
	})
	if err != nil {
		h.fail(ctx, w, "upload document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, op+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
