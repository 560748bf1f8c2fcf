package models

import (
	"bytes"
	"encoding/json"
)

// DraftData is the partially filled wizard state saved while an attempt is open.
// Payloads are opaque to the engine; only their presence is inspected.
type DraftData struct {
	CurrentStep         int             `json:"currentStep"`
	Identity            json.RawMessage `json:"identity,omitempty"`
	Address             json.RawMessage `json:"address,omitempty"`
	BusinessAffiliation json.RawMessage `json:"businessAffiliation,omitempty"`
}

// StepKeys lists the sections that carry a non-empty payload.
func (d DraftData) StepKeys() []string {
	var keys []string
	for _, p := range []struct {
		name    SectionName
		payload json.RawMessage
	}{
		{SectionIdentity, d.Identity},
		{SectionAddress, d.Address},
		{SectionBusinessAffiliation, d.BusinessAffiliation},
	} {
		if hasPayload(p.payload) {
			keys = append(keys, string(p.name))
		}
	}
	return keys
}

func hasPayload(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
