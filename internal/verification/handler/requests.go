package handler

import (
	"encoding/json"
	"strings"

	"ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

type SaveDraftRequest struct {
	CurrentStep         int             `json:"currentStep"`
	Identity            json.RawMessage `json:"identity,omitempty"`
	Address             json.RawMessage `json:"address,omitempty"`
	BusinessAffiliation json.RawMessage `json:"businessAffiliation,omitempty"`
}

func (r *SaveDraftRequest) Validate() error {
	if r.CurrentStep < 0 {
		return dErrors.New(dErrors.CodeValidation, "currentStep must not be negative")
	}
	return nil
}

func (r *SaveDraftRequest) Draft() models.DraftData {
	return models.DraftData{
		CurrentStep:         r.CurrentStep,
		Identity:            r.Identity,
		Address:             r.Address,
		BusinessAffiliation: r.BusinessAffiliation,
	}
}

type DocumentVerificationRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`

	status models.DocumentStatus
}

func (r *DocumentVerificationRequest) Validate() error {
	st, err := models.ParseDocumentStatus(r.Status)
	if err != nil {
		return err
	}
	r.status = st
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

type DocumentDecisionRequest struct {
	DocumentID string `json:"documentId"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

type DecisionRequest struct {
	Decision              string                    `json:"decision"`
	DecisionReason        string                    `json:"decisionReason"`
	Sections              *models.Sections          `json:"sections"`
	DocumentVerifications []DocumentDecisionRequest `json:"documentVerifications"`

	decision  models.Decision
	documents []models.DocumentDecision
}

// Validate checks shape only. Section completeness and reason rules are the engine's.
func (r *DecisionRequest) Validate() error {
	d, err := models.ParseDecision(r.Decision)
	if err != nil {
		return err
	}
	r.decision = d
	if r.Sections == nil {
		return dErrors.New(dErrors.CodeValidation, "sections are required")
	}
	r.documents = make([]models.DocumentDecision, 0, len(r.DocumentVerifications))
	for _, dv := range r.DocumentVerifications {
		docID, err := id.ParseDocumentID(dv.DocumentID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "documentVerifications: "+dErrors.Message(err))
		}
		st, err := models.ParseDocumentStatus(dv.Status)
		if err != nil {
			return err
		}
		r.documents = append(r.documents, models.DocumentDecision{
			DocumentID: docID,
			Status:     st,
			Notes:      strings.TrimSpace(dv.Notes),
		})
	}
	return nil
}
