// Package httpapi assembles the HTTP surface: public certificate validation,
// signed blob downloads and the manager routes behind bearer authentication.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	certhandler "ownerverify/internal/certificate/handler"
	ownerhandler "ownerverify/internal/owner/handler"
	"ownerverify/internal/platform/blobstore"
	"ownerverify/internal/platform/httpserver"
	"ownerverify/internal/platform/metrics"
	ratemw "ownerverify/internal/ratelimit/middleware"
	ratemodels "ownerverify/internal/ratelimit/models"
	verificationhandler "ownerverify/internal/verification/handler"
	"ownerverify/pkg/platform/httputil"
	"ownerverify/pkg/platform/middleware/auth"
	"ownerverify/pkg/platform/middleware/metadata"
	"ownerverify/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Validator     auth.JWTValidator
	Owners        *ownerhandler.Handler
	Verifications *verificationhandler.Handler
	Certificates  *certhandler.Handler
	Blobs         *blobstore.Handler
	Health        map[string]HealthCheck

	// ClientIPs resolves the client address used for audit and rate limiting;
	// nil trusts no proxy headers.
	ClientIPs *metadata.IPResolver

	// RateLimit throttles the public verification route; nil disables it.
	RateLimit    *ratemw.Middleware
	VerifyPolicy ratemodels.Policy
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recovery(d.Logger))
	r.Use(metadata.ClientMetadata(d.ClientIPs))
	r.Use(requesttime.Middleware)
	r.Use(httpserver.RequestLogger(d.Logger, d.Metrics))

	r.Get("/health", healthHandler(d.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Group(func(r chi.Router) {
			if d.RateLimit != nil {
				r.Use(d.RateLimit.RateLimit("verify", d.VerifyPolicy))
			}
			d.Certificates.RegisterPublic(r)
		})
		d.Blobs.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(auth.RequireAuth(d.Validator, d.Logger))
		d.Owners.Register(r)
		d.Verifications.Register(r)
		d.Certificates.Register(r)
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": results})
	}
}
