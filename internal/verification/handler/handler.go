package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ownerhandler "ownerverify/internal/owner/handler"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/service"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/httputil"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the verification engine as seen by HTTP.
type Service interface {
	CreateAttempt(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (*models.Attempt, error)
	SaveDraft(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, draft models.DraftData) (*models.Attempt, error)
	UpdateDocumentVerification(ctx context.Context, req service.DocumentUpdate) (*models.UpsertResult, error)
	SubmitDecision(ctx context.Context, req service.DecisionRequest) (*service.DecisionResult, error)
	GetStatus(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (*service.StatusView, error)
	GetAttempt(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) (*service.AttemptView, error)
	GetBreakdown(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) (*models.Breakdown, error)
	ListHistory(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) ([]*audit.HistoryLog, error)
	ListActivity(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, limit int) ([]*audit.ActivityLog, error)
}

type Handler struct {
	verifications Service
	logger        *slog.Logger
}

func New(verifications Service, logger *slog.Logger) *Handler {
	return &Handler{verifications: verifications, logger: logger}
}

// Register mounts the manager routes. Callers apply authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/owners/{ownerID}/activity", h.handleListActivity)
	r.Post("/owners/{ownerID}/verifications", h.handleCreateAttempt)
	r.Put("/owners/{ownerID}/verifications/draft", h.handleSaveDraft)
	r.Get("/owners/{ownerID}/verifications/status", h.handleGetStatus)
	r.Get("/owners/{ownerID}/verifications/{verificationID}", h.handleGetAttempt)
	r.Put("/owners/{ownerID}/verifications/{verificationID}/documents/{documentID}", h.handleUpdateDocument)
	r.Post("/owners/{ownerID}/verifications/{verificationID}/decision", h.handleSubmitDecision)
	r.Get("/owners/{ownerID}/verifications/{verificationID}/breakdown", h.handleGetBreakdown)
	r.Get("/owners/{ownerID}/verifications/{verificationID}/history", h.handleListHistory)
}

func (h *Handler) handleCreateAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	attempt, err := h.verifications.CreateAttempt(ctx, ownerID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "create verification attempt", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAttemptResponse(attempt))
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SaveDraftRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	attempt, err := h.verifications.SaveDraft(ctx, ownerID, requestcontext.ActorID(ctx), req.Draft())
	if err != nil {
		h.fail(ctx, w, "save verification draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAttemptResponse(attempt))
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	view, err := h.verifications.GetStatus(ctx, ownerID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "get verification status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStatusResponse(view))
}

func (h *Handler) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, verificationID, ok := h.attemptParams(w, r)
	if !ok {
		return
	}
	view, err := h.verifications.GetAttempt(ctx, ownerID, verificationID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "get verification attempt", err)
		return
	}
	resp := AttemptDetailResponse{
		Attempt:               toAttemptResponse(view.Attempt),
		DocumentVerifications: make([]DocumentVerificationResponse, 0, len(view.Verifications)),
	}
	for _, dv := range view.Verifications {
		resp.DocumentVerifications = append(resp.DocumentVerifications, toDocumentVerificationResponse(dv))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, verificationID, ok := h.attemptParams(w, r)
	if !ok {
		return
	}
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DocumentVerificationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.verifications.UpdateDocumentVerification(ctx, service.DocumentUpdate{
		OwnerID:        ownerID,
		VerificationID: verificationID,
		DocumentID:     documentID,
		ActorID:        requestcontext.ActorID(ctx),
		Status:         req.status,
		Notes:          req.Notes,
	})
	if err != nil {
		h.fail(ctx, w, "update document verification", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UpsertResponse{
		DocumentVerificationResponse: toDocumentVerificationResponse(result.Verification),
		PreviousStatus:               string(result.PreviousStatus),
		RequiresNote:                 result.RequiresNote,
		NoteMissing:                  result.NoteMissing,
	})
}

func (h *Handler) handleSubmitDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, verificationID, ok := h.attemptParams(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.verifications.SubmitDecision(ctx, service.DecisionRequest{
		OwnerID:        ownerID,
		VerificationID: verificationID,
		ActorID:        requestcontext.ActorID(ctx),
		Decision:       req.decision,
		Reason:         req.DecisionReason,
		Sections:       *req.Sections,
		Documents:      req.documents,
	})
	if err != nil {
		h.fail(ctx, w, "submit verification decision", err)
		return
	}
	resp := DecisionResponse{
		Attempt: toAttemptResponse(result.Attempt),
		Owner:   ownerhandler.ToOwnerResponse(&result.Owner),
	}
	if result.CertificateID != nil {
		s := result.CertificateID.String()
		resp.CertificateID = &s
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, verificationID, ok := h.attemptParams(w, r)
	if !ok {
		return
	}
	breakdown, err := h.verifications.GetBreakdown(ctx, ownerID, verificationID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "get verification breakdown", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, breakdown)
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, verificationID, ok := h.attemptParams(w, r)
	if !ok {
		return
	}
	entries, err := h.verifications.ListHistory(ctx, ownerID, verificationID, requestcontext.ActorID(ctx))
	if err != nil {
		h.fail(ctx, w, "list verification history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"history": toHistoryResponse(entries)})
}

func (h *Handler) handleListActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, ok := h.ownerParam(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 500"))
			return
		}
		limit = n
	}
	entries, err := h.verifications.ListActivity(ctx, ownerID, requestcontext.ActorID(ctx), limit)
	if err != nil {
		h.fail(ctx, w, "list owner activity", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"activity": toActivityResponse(entries)})
}

func (h *Handler) ownerParam(w http.ResponseWriter, r *http.Request) (id.OwnerID, bool) {
	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.OwnerID{}, false
	}
	return ownerID, true
}

func (h *Handler) attemptParams(w http.ResponseWriter, r *http.Request) (id.OwnerID, id.VerificationID, bool) {
	ownerID, ok := h.ownerParam(w, r)
	if !ok {
		return id.OwnerID{}, id.VerificationID{}, false
	}
	verificationID, err := id.ParseVerificationID(chi.URLParam(r, "verificationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.OwnerID{}, id.VerificationID{}, false
	}
	return ownerID, verificationID, true
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
