package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		entity  EntityType
		action  Action
		details map[string]any
		want    string
	}{
		{
			name:    "template with placeholder",
			entity:  EntityBusinessOwner,
			action:  ActionDelete,
			details: map[string]any{"reason": "duplicate record"},
			want:    "Business owner profile deleted - duplicate record",
		},
		{
			name:   "missing placeholder value drops the dangling separator",
			entity: EntityBusinessOwner,
			action: ActionDelete,
			want:   "Business owner profile deleted",
		},
		{
			name:    "decision",
			entity:  EntityVerification,
			action:  ActionVerificationCompleted,
			details: map[string]any{"decision": "VERIFIED"},
			want:    "Verification completed with decision VERIFIED",
		},
		{
			name:   "unknown combination falls back",
			entity: EntityCertificate,
			action: ActionDraftSaved,
			want:   "DRAFT_SAVED certificate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.entity, tt.action, tt.details))
		})
	}
}
