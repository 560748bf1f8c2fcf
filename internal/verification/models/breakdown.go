package models

import (
	ownermodels "ownerverify/internal/owner/models"
	id "ownerverify/pkg/domain"
)

// CategoryBreakdown counts document verdicts in one document category.
type CategoryBreakdown struct {
	Category ownermodels.DocumentCategory `json:"category"`
	Total    int                          `json:"total"`
	ByStatus map[DocumentStatus]int       `json:"byStatus"`
}

type Breakdown struct {
	VerificationID id.VerificationID      `json:"verificationId"`
	Categories     []CategoryBreakdown    `json:"categories"`
	Totals         map[DocumentStatus]int `json:"totals"`
	Total          int                    `json:"total"`
}

var categoryOrder = []ownermodels.DocumentCategory{
	ownermodels.CategoryIdentity,
	ownermodels.CategoryAddress,
	ownermodels.CategoryBusinessAffiliation,
	ownermodels.CategoryOther,
}

// ComputeBreakdown groups verdicts by the category of their document. Verdicts for
// documents missing from categories count under OTHER.
func ComputeBreakdown(verificationID id.VerificationID, verifications []*DocumentVerification, categories map[id.DocumentID]ownermodels.DocumentCategory) *Breakdown {
	byCategory := make(map[ownermodels.DocumentCategory]*CategoryBreakdown, len(categoryOrder))
	for _, c := range categoryOrder {
		byCategory[c] = &CategoryBreakdown{Category: c, ByStatus: map[DocumentStatus]int{}}
	}
	b := &Breakdown{VerificationID: verificationID, Totals: map[DocumentStatus]int{}}

	for _, dv := range verifications {
		category, ok := categories[dv.DocumentID]
		if !ok {
			category = ownermodels.CategoryOther
		}
		cb := byCategory[category]
		if cb == nil {
			cb = byCategory[ownermodels.CategoryOther]
		}
		cb.ByStatus[dv.Status]++
		cb.Total++
		b.Totals[dv.Status]++
		b.Total++
	}

	for _, c := range categoryOrder {
		b.Categories = append(b.Categories, *byCategory[c])
	}
	return b
}
