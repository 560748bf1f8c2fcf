package storage

import (
	"context"
	"sort"

	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/platform/sentinel"
)

type OwnerStore struct{ v *view }

// Create inserts an owner. Not part of the engine ports; used for seeding and tests.
func (s *OwnerStore) Create(_ context.Context, o *ownermodels.BusinessOwner) error {
	return s.v.with(func(st *state) error {
		if _, exists := st.owners[o.ID]; exists {
			return sentinel.ErrConflict
		}
		if o.Version == 0 {
			o.Version = 1
		}
		if o.VerificationStatus == "" {
			o.VerificationStatus = ownermodels.StatusUnverified
		}
		st.owners[o.ID] = *o
		return nil
	})
}

func (s *OwnerStore) FindByID(_ context.Context, ownerID id.OwnerID) (*ownermodels.BusinessOwner, error) {
	var out *ownermodels.BusinessOwner
	err := s.v.with(func(st *state) error {
		o, ok := st.owners[ownerID]
		if !ok {
			return sentinel.ErrNotFound
		}
		out = &o
		return nil
	})
	return out, err
}

func (s *OwnerStore) Update(_ context.Context, o *ownermodels.BusinessOwner) error {
	return s.v.with(func(st *state) error {
		current, ok := st.owners[o.ID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if current.Version != o.Version {
			return sentinel.ErrConflict
		}
		o.Version++
		st.owners[o.ID] = *o
		return nil
	})
}

type DocumentStore struct{ v *view }

func (s *DocumentStore) Create(_ context.Context, d *ownermodels.Document) error {
	return s.v.with(func(st *state) error {
		if _, ok := st.owners[d.OwnerID]; !ok {
			return sentinel.ErrNotFound
		}
		st.documents[d.ID] = *d
		return nil
	})
}

func (s *DocumentStore) FindByID(_ context.Context, documentID id.DocumentID) (*ownermodels.Document, error) {
	var out *ownermodels.Document
	err := s.v.with(func(st *state) error {
		d, ok := st.documents[documentID]
		if !ok {
			return sentinel.ErrNotFound
		}
		out = &d
		return nil
	})
	return out, err
}

func (s *DocumentStore) ListByOwner(_ context.Context, ownerID id.OwnerID) ([]*ownermodels.Document, error) {
	var out []*ownermodels.Document
	err := s.v.with(func(st *state) error {
		for _, d := range st.documents {
			if d.OwnerID == ownerID {
				out = append(out, &d)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.Before(out[j].UploadedAt) })
	return out, err
}

type AttemptStore struct{ v *view }

func (s *AttemptStore) Create(_ context.Context, a *models.Attempt) error {
	return s.v.with(func(st *state) error {
		for _, existing := range st.attempts {
			if existing.OwnerID == a.OwnerID && existing.IsOpen() {
				return sentinel.ErrConflict
			}
		}
		st.attempts[a.ID] = *a
		return nil
	})
}

func (s *AttemptStore) FindByID(_ context.Context, verificationID id.VerificationID) (*models.Attempt, error) {
	var out *models.Attempt
	err := s.v.with(func(st *state) error {
		a, ok := st.attempts[verificationID]
		if !ok {
			return sentinel.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *AttemptStore) FindOpenByOwner(_ context.Context, ownerID id.OwnerID) (*models.Attempt, error) {
	var out *models.Attempt
	err := s.v.with(func(st *state) error {
		for _, a := range st.attempts {
			if a.OwnerID == ownerID && a.IsOpen() {
				out = &a
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return out, err
}

func (s *AttemptStore) SaveDraft(_ context.Context, a *models.Attempt) error {
	return s.v.with(func(st *state) error {
		current, ok := st.attempts[a.ID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if !current.IsOpen() {
			return sentinel.ErrInvalidState
		}
		current.DraftData = a.DraftData
		current.LastUpdated = a.LastUpdated
		st.attempts[a.ID] = current
		return nil
	})
}

func (s *AttemptStore) Complete(_ context.Context, a *models.Attempt) error {
	return s.v.with(func(st *state) error {
		current, ok := st.attempts[a.ID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if !current.IsOpen() || a.IsOpen() {
			return sentinel.ErrInvalidState
		}
		st.attempts[a.ID] = *a
		return nil
	})
}

type VerificationStore struct{ v *view }

func (s *VerificationStore) Upsert(_ context.Context, dv *models.DocumentVerification) (models.DocumentStatus, error) {
	var previous models.DocumentStatus
	err := s.v.with(func(st *state) error {
		key := dvKey{dv.VerificationID, dv.DocumentID}
		if existing, ok := st.verifications[key]; ok {
			previous = existing.Status
		}
		st.verifications[key] = *dv
		return nil
	})
	return previous, err
}

func (s *VerificationStore) UpsertBatch(_ context.Context, dvs []*models.DocumentVerification) error {
	return s.v.with(func(st *state) error {
		for _, dv := range dvs {
			st.verifications[dvKey{dv.VerificationID, dv.DocumentID}] = *dv
		}
		return nil
	})
}

func (s *VerificationStore) ListByVerification(_ context.Context, verificationID id.VerificationID) ([]*models.DocumentVerification, error) {
	var out []*models.DocumentVerification
	err := s.v.with(func(st *state) error {
		for key, dv := range st.verifications {
			if key.verificationID == verificationID {
				out = append(out, &dv)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].VerifiedAt.Equal(out[j].VerifiedAt) {
			return out[i].DocumentID.String() < out[j].DocumentID.String()
		}
		return out[i].VerifiedAt.Before(out[j].VerifiedAt)
	})
	return out, err
}

type CertificateStore struct{ v *view }

func (s *CertificateStore) Create(_ context.Context, c *certmodels.Certificate) error {
	return s.v.with(func(st *state) error {
		for _, existing := range st.certificates {
			switch {
			case existing.VerificationID == c.VerificationID:
				return sentinel.ErrAlreadyUsed
			case existing.CertificateNumber == c.CertificateNumber:
				return sentinel.ErrConflict
			case existing.VerificationHash == c.VerificationHash:
				return sentinel.ErrAlreadyUsed
			}
		}
		st.certificates[c.ID] = *c
		return nil
	})
}

func (s *CertificateStore) find(match func(c *certmodels.Certificate) bool) (*certmodels.Certificate, error) {
	var out *certmodels.Certificate
	err := s.v.with(func(st *state) error {
		for _, c := range st.certificates {
			if match(&c) && (out == nil || c.IssuedAt.After(out.IssuedAt)) {
				out = &c
			}
		}
		if out == nil {
			return sentinel.ErrNotFound
		}
		return nil
	})
	return out, err
}

func (s *CertificateStore) FindByID(_ context.Context, certificateID id.CertificateID) (*certmodels.Certificate, error) {
	return s.find(func(c *certmodels.Certificate) bool { return c.ID == certificateID })
}

func (s *CertificateStore) FindByVerification(_ context.Context, verificationID id.VerificationID) (*certmodels.Certificate, error) {
	return s.find(func(c *certmodels.Certificate) bool { return c.VerificationID == verificationID })
}

func (s *CertificateStore) FindByHash(_ context.Context, hash string) (*certmodels.Certificate, error) {
	return s.find(func(c *certmodels.Certificate) bool { return c.VerificationHash == hash })
}

func (s *CertificateStore) FindLatestByOwner(_ context.Context, ownerID id.OwnerID) (*certmodels.Certificate, error) {
	return s.find(func(c *certmodels.Certificate) bool { return c.OwnerID == ownerID })
}

func (s *CertificateStore) FindRevocation(ctx context.Context, certificateID id.CertificateID) (certmodels.Revocation, error) {
	c, err := s.FindByID(ctx, certificateID)
	if err != nil {
		return certmodels.Revocation{}, err
	}
	return certmodels.Revocation{
		IsRevoked:     c.IsRevoked,
		RevokedAt:     c.RevokedAt,
		RevokedReason: c.RevokedReason,
		RevokedBy:     c.RevokedBy,
	}, nil
}

func (s *CertificateStore) Revoke(_ context.Context, c *certmodels.Certificate) error {
	return s.v.with(func(st *state) error {
		current, ok := st.certificates[c.ID]
		if !ok {
			return sentinel.ErrNotFound
		}
		if current.IsRevoked {
			return sentinel.ErrInvalidState
		}
		current.IsRevoked = true
		current.RevokedAt = c.RevokedAt
		current.RevokedReason = c.RevokedReason
		current.RevokedBy = c.RevokedBy
		st.certificates[c.ID] = current
		return nil
	})
}
