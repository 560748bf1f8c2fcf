package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ownerverify/internal/certificate/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/httputil"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	VerifyByHash(ctx context.Context, hash string) (models.Validation, error)
	Revoke(ctx context.Context, certificateID id.CertificateID, actorID id.ActorID, reason string) (*models.Certificate, error)
	GetDownloadURL(ctx context.Context, certificateID id.CertificateID, actorID id.ActorID) (string, error)
}

type Handler struct {
	certificates Service
	logger       *slog.Logger
}

func New(certificates Service, logger *slog.Logger) *Handler {
	return &Handler{certificates: certificates, logger: logger}
}

// RegisterPublic mounts the anonymous validation route.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/verify/{hash}", h.handleVerify)
}

// Register mounts the manager routes. Callers apply authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certificates/{certificateID}/revoke", h.handleRevoke)
	r.Get("/certificates/{certificateID}/download", h.handleDownload)
}

type RevokeRequest struct {
	Reason string `json:"reason"`
}

func (r *RevokeRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

type RevokeResponse struct {
	ID                string     `json:"id"`
	CertificateNumber string     `json:"certificateNumber"`
	IsRevoked         bool       `json:"isRevoked"`
	RevokedAt         *time.Time `json:"revokedAt"`
	RevokedReason     string     `json:"revokedReason"`
}

// handleVerify always answers 200 with a validity verdict; only lookup failures are errors.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := h.certificates.VerifyByHash(ctx, chi.URLParam(r, "hash"))
	if err != nil {
		h.fail(ctx, w, "verify certificate", err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certificateID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RevokeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	cert, err := h.certificates.Revoke(ctx, certificateID, requestcontext.ActorID(ctx), req.Reason)
	if err != nil {
		h.fail(ctx, w, "revoke certificate", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RevokeResponse{
		ID:                cert.ID.String(),
		CertificateNumber: cert.CertificateNumber,
		IsRevoked:         cert.IsRevoked,
		RevokedAt:         cert.RevokedAt,
		RevokedReason:     cert.RevokedReason,
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certificateID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	url, err := h.certificates.GetDownloadURL(ctx, certificateID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "sign certificate download", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
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
