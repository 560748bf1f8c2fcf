// Package blobstore keeps uploaded documents and rendered certificates on the
// local filesystem and hands out short-lived signed retrieval URLs.
package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"ownerverify/pkg/platform/sentinel"
)

const signingKeyInfo = "ownerverify blob url signing v1"

// Object describes a stored blob.
type Object struct {
	Path        string
	URL         string
	ContentHash string
	Size        int64
}

type urlClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// Store writes blobs under a root directory.
type Store struct {
	root       string
	baseURL    string
	signingKey []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// New prepares the root directory and derives the URL signing key from the app secret.
func New(root, baseURL string, appSecret []byte, defaultTTL time.Duration) (*Store, error) {
	if len(appSecret) == 0 {
		return nil, errors.New("blobstore: app secret is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	key, err := DeriveSigningKey(appSecret)
	if err != nil {
		return nil, err
	}
	return &Store{
		root:       root,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: key,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// DeriveSigningKey expands the application secret into a key used only for blob URLs.
func DeriveSigningKey(secret []byte) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

// Upload stores data under a fresh dated path and returns its content hash and a signed URL.
func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	sum := sha256.Sum256(data)
	now := s.now().UTC()
	rel := path.Join(now.Format("2006/01"), uuid.NewString()+extensionFor(contentType))

	full, err := s.resolve(rel)
	if err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return Object{}, fmt.Errorf("create blob dir: %w", err)
	}
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return Object{}, fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return Object{}, fmt.Errorf("commit blob: %w", err)
	}

	signed, err := s.SignedURL(ctx, rel, s.defaultTTL)
	if err != nil {
		return Object{}, err
	}
	return Object{
		Path:        rel,
		URL:         signed,
		ContentHash: hex.EncodeToString(sum[:]),
		Size:        int64(len(data)),
	}, nil
}

// SignedURL returns a retrieval URL for p that stops working after ttl.
func (s *Store) SignedURL(ctx context.Context, p string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.resolve(p); err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, urlClaims{
		Path: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign blob url: %w", err)
	}
	return s.baseURL + "/blobs/" + p + "?token=" + url.QueryEscape(token), nil
}

// Verify checks that token grants access to p.
func (s *Store) Verify(p, token string) error {
	claims := &urlClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("verify blob token: %w", err)
	}
	if claims.Path != p {
		return errors.New("verify blob token: path mismatch")
	}
	return nil
}

// Open returns the blob contents for p.
func (s *Store) Open(p string) (*os.File, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, sentinel.ErrNotFound
	}
	return f, err
}

func (s *Store) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, "..") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("invalid blob path %q", p)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
