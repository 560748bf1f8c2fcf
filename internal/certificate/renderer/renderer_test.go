package renderer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerverify/internal/certificate/models"
)

func TestRender(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out, err := New("").Render(context.Background(), models.RenderPayload{
		CertificateNumber: "PR-BO-2026-004211",
		OwnerName:         "José Núñez",
		BusinessName:      "Núñez Bakery",
		VerifiedAt:        now,
		IssuedAt:          now,
		ExpiresAt:         now.Add(models.Validity),
		VerificationHash:  "3f1c0ffee3f1c0ffee3f1c0ffee3f1c0ffee3f1c0ffee3f1c0ffee3f1c0ffee1",
		ValidationURL:     "https://permits.example.gov/verify/3f1c",
		QRCodeData:        `{"certificateNumber":"PR-BO-2026-004211"}`,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("").Render(ctx, models.RenderPayload{QRCodeData: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
