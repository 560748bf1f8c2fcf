package testutil

import (
	"net/http"
	"time"

	id "ownerverify/pkg/domain"
	"ownerverify/pkg/requestcontext"
)

// WithActor adds the authenticated manager to the request context.
// This simulates what the auth middleware does for bearer-authenticated requests.
func WithActor(req *http.Request, actor id.ActorID) *http.Request {
	return req.WithContext(requestcontext.WithActorID(req.Context(), actor))
}

// WithRequestTime pins the request clock so handlers and services see a fixed now.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
