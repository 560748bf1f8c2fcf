package blobstore

import (
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/httputil"
	"ownerverify/pkg/platform/sentinel"
)

// Handler serves blobs to holders of a valid signed URL.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/blobs/*", h.HandleGet)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")
	if err := h.store.Verify(p, r.URL.Query().Get("token")); err != nil {
		h.logger.WarnContext(r.Context(), "rejected blob request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "link is invalid or has expired"))
		return
	}

	f, err := h.store.Open(p)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "file not found"))
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to open blob", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open file"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to stat file"))
		return
	}
	w.Header().Set("Cache-Control", "private, no-store")
	http.ServeContent(w, r, path.Base(p), info.ModTime(), f)
}
