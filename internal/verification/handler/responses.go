package handler

import (
	"time"

	certmodels "ownerverify/internal/certificate/models"
	ownerhandler "ownerverify/internal/owner/handler"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/service"
	audit "ownerverify/pkg/platform/audit"
)

type AttemptResponse struct {
	ID             string           `json:"id"`
	OwnerID        string           `json:"businessOwnerId"`
	InitiatedBy    string           `json:"initiatedBy"`
	Sections       models.Sections  `json:"sections"`
	DraftData      models.DraftData `json:"draftData"`
	CompletedAt    *time.Time       `json:"completedAt"`
	CompletedBy    *string          `json:"completedBy"`
	Decision       *string          `json:"decision"`
	DecisionReason string           `json:"decisionReason,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastUpdated    time.Time        `json:"lastUpdated"`
}

func toAttemptResponse(a *models.Attempt) *AttemptResponse {
	if a == nil {
		return nil
	}
	resp := &AttemptResponse{
		ID:             a.ID.String(),
		OwnerID:        a.OwnerID.String(),
		InitiatedBy:    a.InitiatedBy.String(),
		Sections:       a.Sections,
		DraftData:      a.DraftData,
		CompletedAt:    a.CompletedAt,
		DecisionReason: a.DecisionReason,
		CreatedAt:      a.CreatedAt,
		LastUpdated:    a.LastUpdated,
	}
	if a.CompletedBy != nil {
		s := a.CompletedBy.String()
		resp.CompletedBy = &s
	}
	if a.Decision != nil {
		s := string(*a.Decision)
		resp.Decision = &s
	}
	return resp
}

type DocumentVerificationResponse struct {
	VerificationID string    `json:"verificationId"`
	DocumentID     string    `json:"documentId"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	VerifiedBy     string    `json:"verifiedBy"`
	VerifiedAt     time.Time `json:"verifiedAt"`
}

func toDocumentVerificationResponse(dv *models.DocumentVerification) DocumentVerificationResponse {
	return DocumentVerificationResponse{
		VerificationID: dv.VerificationID.String(),
		DocumentID:     dv.DocumentID.String(),
		Status:         string(dv.Status),
		Notes:          dv.Notes,
		VerifiedBy:     dv.VerifiedBy.String(),
		VerifiedAt:     dv.VerifiedAt,
	}
}

type UpsertResponse struct {
	DocumentVerificationResponse
	PreviousStatus string `json:"previousStatus,omitempty"`
	RequiresNote   bool   `json:"requiresNote"`
	NoteMissing    bool   `json:"noteMissing"`
}

type AttemptDetailResponse struct {
	Attempt               *AttemptResponse               `json:"attempt"`
	DocumentVerifications []DocumentVerificationResponse `json:"documentVerifications"`
}

type DecisionResponse struct {
	Attempt       *AttemptResponse           `json:"attempt"`
	Owner         ownerhandler.OwnerResponse `json:"businessOwner"`
	CertificateID *string                    `json:"certificateId"`
}

type CertificateSummary struct {
	ID                string     `json:"id"`
	CertificateNumber string     `json:"certificateNumber"`
	IssuedAt          time.Time  `json:"issuedAt"`
	ExpiresAt         time.Time  `json:"expiresAt"`
	ValidationURL     string     `json:"validationUrl"`
	IsRevoked         bool       `json:"isRevoked"`
	RevokedAt         *time.Time `json:"revokedAt,omitempty"`
}

func toCertificateSummary(c *certmodels.Certificate) *CertificateSummary {
	if c == nil {
		return nil
	}
	return &CertificateSummary{
		ID:                c.ID.String(),
		CertificateNumber: c.CertificateNumber,
		IssuedAt:          c.IssuedAt,
		ExpiresAt:         c.ExpiresAt,
		ValidationURL:     c.ValidationURL,
		IsRevoked:         c.IsRevoked,
		RevokedAt:         c.RevokedAt,
	}
}

type StatusResponse struct {
	Owner       ownerhandler.OwnerResponse `json:"businessOwner"`
	Attempt     *AttemptResponse           `json:"currentAttempt"`
	Breakdown   *models.Breakdown          `json:"breakdown"`
	Certificate *CertificateSummary        `json:"latestCertificate"`
}

func toStatusResponse(v *service.StatusView) StatusResponse {
	return StatusResponse{
		Owner:       ownerhandler.ToOwnerResponse(&v.Owner),
		Attempt:     toAttemptResponse(v.Attempt),
		Breakdown:   v.Breakdown,
		Certificate: toCertificateSummary(v.Certificate),
	}
}

type HistoryEntryResponse struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performedBy"`
	Details     map[string]any `json:"details,omitempty"`
	StepNumber  *int           `json:"stepNumber,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func toHistoryResponse(entries []*audit.HistoryLog) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			ID:          e.ID.String(),
			Action:      string(e.Action),
			PerformedBy: e.PerformedBy.String(),
			Details:     e.Details,
			StepNumber:  e.StepNumber,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

type ActivityEntryResponse struct {
	ID          string         `json:"id"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performedBy"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func toActivityResponse(entries []*audit.ActivityLog) []ActivityEntryResponse {
	out := make([]ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityEntryResponse{
			ID:          e.ID.String(),
			EntityType:  string(e.EntityType),
			EntityID:    e.EntityID,
			Action:      string(e.Action),
			PerformedBy: e.PerformedBy.String(),
			Description: e.Description,
			Details:     e.Details,
			UserAgent:   e.UserAgent,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
