package audit

import (
	"fmt"
	"regexp"
	"strings"
)

// descriptionTemplates maps "entityType:action" to a human readable sentence.
// {placeholders} are filled from the entry details.
var descriptionTemplates = map[string]string{
	"business_owner:CREATE":                      "Business owner profile created",
	"business_owner:UPDATE":                      "Business owner profile updated",
	"business_owner:DELETE":                      "Business owner profile deleted - {reason}",
	"document:DOCUMENT_UPLOADED":                 "Document uploaded: {fileName}",
	"document:DELETE":                            "Document deleted: {fileName}",
	"document:DOCUMENT_VERIFICATION_UPDATED":     "Document marked as {status}",
	"verification:VERIFICATION_STARTED":          "Verification process started",
	"verification:DRAFT_SAVED":                   "Verification draft saved",
	"verification:DOCUMENT_VERIFICATION_UPDATED": "Document marked as {status}",
	"verification:VERIFICATION_COMPLETED":        "Verification completed with decision {decision}",
	"certificate:CERTIFICATE_GENERATED":          "Verification certificate {certificateNumber} issued",
	"certificate:CERTIFICATE_REVOKED":            "Certificate {certificateNumber} revoked - {reason}",
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Describe renders the description for an entity/action pair. Unknown pairs
// fall back to "{action} {entityType}"; missing details leave an empty value.
func Describe(entityType EntityType, action Action, details map[string]any) string {
	tmpl, ok := descriptionTemplates[string(entityType)+":"+string(action)]
	if !ok {
		return fmt.Sprintf("%s %s", action, entityType)
	}
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := details[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	})
	return strings.TrimSuffix(strings.TrimSpace(out), " -")
}
