package audit

import (
	"context"

	"ownerverify/internal/verification/ports"
	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
)

// OwnerResolvers registers the owner lookups for documents, verifications and
// certificates. stores must be committed-state stores.
func OwnerResolvers(stores ports.Stores) []Option {
	return []Option{
		WithOwnerResolver(audit.EntityDocument, func(ctx context.Context, entityID string) (id.OwnerID, error) {
			docID, err := id.ParseDocumentID(entityID)
			if err != nil {
				return id.OwnerID{}, err
			}
			doc, err := stores.Documents.FindByID(ctx, docID)
			if err != nil {
				return id.OwnerID{}, err
			}
			return doc.OwnerID, nil
		}),
		WithOwnerResolver(audit.EntityVerification, func(ctx context.Context, entityID string) (id.OwnerID, error) {
			verificationID, err := id.ParseVerificationID(entityID)
			if err != nil {
				return id.OwnerID{}, err
			}
			attempt, err := stores.Attempts.FindByID(ctx, verificationID)
			if err != nil {
				return id.OwnerID{}, err
			}
			return attempt.OwnerID, nil
		}),
		WithOwnerResolver(audit.EntityCertificate, func(ctx context.Context, entityID string) (id.OwnerID, error) {
			certificateID, err := id.ParseCertificateID(entityID)
			if err != nil {
				return id.OwnerID{}, err
			}
			cert, err := stores.Certificates.FindByID(ctx, certificateID)
			if err != nil {
				return id.OwnerID{}, err
			}
			return cert.OwnerID, nil
		}),
	}
}
