package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
)

type BlobStoreSuite struct {
	suite.Suite
	store *Store
	now   time.Time
}

func TestBlobStoreSuite(t *testing.T) {
	suite.Run(t, new(BlobStoreSuite))
}

func (s *BlobStoreSuite) SetupTest() {
	store, err := New(s.T().TempDir(), "https://permits.example.gov", []byte("test-secret"), time.Minute)
	s.Require().NoError(err)
	s.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return s.now }
	s.store = store
}

func (s *BlobStoreSuite) TestUpload() {
	ctx := context.Background()
	data := []byte("%PDF-1.3 certificate")

	obj, err := s.store.Upload(ctx, data, "application/pdf")
	s.Require().NoError(err)

	sum := sha256.Sum256(data)
	s.Equal(hex.EncodeToString(sum[:]), obj.ContentHash)
	s.Equal(int64(len(data)), obj.Size)
	s.True(strings.HasPrefix(obj.Path, "2026/05/"))
	s.True(strings.HasSuffix(obj.Path, ".pdf"))
	s.True(strings.HasPrefix(obj.URL, "https://permits.example.gov/blobs/"+obj.Path+"?token="))

	f, err := s.store.Open(obj.Path)
	s.Require().NoError(err)
	defer f.Close()
	got, err := io.ReadAll(f)
	s.Require().NoError(err)
	s.Equal(data, got)
}

func (s *BlobStoreSuite) TestSignedURLs() {
	ctx := context.Background()
	obj, err := s.store.Upload(ctx, []byte("id scan"), "image/png")
	s.Require().NoError(err)

	signed, err := s.store.SignedURL(ctx, obj.Path, 30*time.Second)
	s.Require().NoError(err)
	token := tokenFrom(s.T(), signed)

	s.Run("valid token for its own path", func() {
		s.NoError(s.store.Verify(obj.Path, token))
	})

	s.Run("token cannot be replayed for another path", func() {
		s.Error(s.store.Verify("2026/05/other.png", token))
	})

	s.Run("token expires", func() {
		s.now = s.now.Add(time.Minute)
		s.Error(s.store.Verify(obj.Path, token))
	})

	s.Run("traversal paths are refused", func() {
		_, err := s.store.SignedURL(ctx, "../../etc/passwd", time.Minute)
		s.Error(err)
	})
}

func (s *BlobStoreSuite) TestHandler() {
	ctx := context.Background()
	obj, err := s.store.Upload(ctx, []byte("utility bill"), "application/pdf")
	s.Require().NoError(err)

	r := chi.NewRouter()
	NewHandler(s.store, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

	s.Run("serves with valid token", func() {
		u, _ := url.Parse(obj.URL)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("utility bill", rec.Body.String())
	})

	s.Run("forbidden without token", func() {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blobs/"+obj.Path, nil))
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func tokenFrom(t *testing.T, signed string) string {
	t.Helper()
	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	return u.Query().Get("token")
}
