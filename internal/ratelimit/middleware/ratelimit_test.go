package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerverify/internal/ratelimit/models"
	"ownerverify/internal/ratelimit/store/bucket"
	"ownerverify/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	return nil, errors.New("redis: connection refused")
}

func newHandler(store BucketStore, opts ...Option) http.Handler {
	m := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	return m.RateLimit("verify", models.Policy{Limit: 2, Window: time.Minute})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/verify/abc", nil)
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "test"))
}

func TestRateLimit(t *testing.T) {
	t.Run("allows under the limit and sets headers", func(t *testing.T) {
		h := newHandler(bucket.NewInMemoryBucketStore())
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("203.0.113.7"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("rejects over the limit per client ip", func(t *testing.T) {
		h := newHandler(bucket.NewInMemoryBucketStore())
		for range 2 {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, requestFrom("203.0.113.8"))
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("203.0.113.8"))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), `"error":"rate_limit_exceeded"`)

		w = httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("198.51.100.1"))
		assert.Equal(t, http.StatusOK, w.Code, "other clients keep their own budget")
	})

	t.Run("store failures fail open", func(t *testing.T) {
		h := newHandler(failingStore{})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("203.0.113.9"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		h := newHandler(failingStore{}, WithDisabled(true))
		for range 5 {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, requestFrom("203.0.113.10"))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		}
	})
}
