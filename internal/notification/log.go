package notification

import (
	"context"
	"log/slog"

	verificationmodels "ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
)

// LogNotifier writes notifications to the log. Used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendVerificationDecision(ctx context.Context, ownerID id.OwnerID, decision verificationmodels.Decision, reason string) error {
	n.logger.InfoContext(ctx, "notification: verification decision",
		"owner_id", ownerID.String(),
		"decision", string(decision),
		"reason", reason,
	)
	return nil
}

func (n *LogNotifier) SendDocumentStatus(ctx context.Context, ownerID id.OwnerID, documentID id.DocumentID, status verificationmodels.DocumentStatus) error {
	n.logger.InfoContext(ctx, "notification: document status",
		"owner_id", ownerID.String(),
		"document_id", documentID.String(),
		"status", string(status),
	)
	return nil
}
