package main

import (
	"context"
	"log/slog"
	"time"

	jwttoken "ownerverify/internal/jwt_token"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/platform/config"
	"ownerverify/internal/storage"
	id "ownerverify/pkg/domain"
)

const devTokenTTL = 12 * time.Hour

// seedDevData puts one unverified owner into in-memory storage and logs a
// bearer token for its manager, so a fresh process can be exercised by hand.
func seedDevData(ctx context.Context, db *storage.DB, cfg config.Server, log *slog.Logger) error {
	managerID := id.NewActorID()
	if cfg.DevManagerID != "" {
		parsed, err := id.ParseActorID(cfg.DevManagerID)
		if err != nil {
			return err
		}
		managerID = parsed
	}

	now := time.Now().UTC()
	owner := &ownermodels.BusinessOwner{
		ID:                 id.NewOwnerID(),
		FirstName:          "Dana",
		LastName:           "Reyes",
		BusinessName:       "Reyes Hardware LLC",
		Email:              "dana.reyes@example.com",
		Phone:              "+1-555-0100",
		TaxID:              "12-3456789",
		VerificationStatus: ownermodels.StatusUnverified,
		AssignedManagerID:  managerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.Owners().Create(ctx, owner); err != nil {
		return err
	}

	token, err := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience).
		GenerateAccessToken(managerID, devTokenTTL)
	if err != nil {
		return err
	}
	log.Info("seeded development owner",
		"owner_id", owner.ID.String(),
		"manager_id", managerID.String(),
		"bearer_token", token,
	)
	return nil
}
