package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/audit/store/memory"
	"ownerverify/pkg/requestcontext"
)

type failingStore struct {
	*memory.InMemoryStore
	failActivity bool
}

func (f *failingStore) AppendActivity(ctx context.Context, e *audit.ActivityLog) error {
	if f.failActivity {
		return errors.New("disk full")
	}
	return f.InMemoryStore.AppendActivity(ctx, e)
}

type AuditServiceSuite struct {
	suite.Suite
	store   *memory.InMemoryStore
	logs    *bytes.Buffer
	ownerID id.OwnerID
	docID   id.DocumentID
	actor   id.ActorID
	service *Service
	ctx     context.Context
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceSuite))
}

func (s *AuditServiceSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.logs = &bytes.Buffer{}
	s.ownerID = id.NewOwnerID()
	s.docID = id.NewDocumentID()
	s.actor = id.NewActorID()

	docs := map[string]id.OwnerID{s.docID.String(): s.ownerID}
	s.service = NewService(s.store,
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))),
		WithOwnerResolver(audit.EntityDocument, func(_ context.Context, entityID string) (id.OwnerID, error) {
			owner, ok := docs[entityID]
			if !ok {
				return id.OwnerID{}, errors.New("document not found")
			}
			return owner, nil
		}),
	)

	ctx := requestcontext.WithTime(context.Background(), time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC))
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.1",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	s.ctx = ctx
}

func (s *AuditServiceSuite) TestLogEvent() {
	s.Run("resolves the owner from the entity", func() {
		res := s.service.LogEvent(s.ctx, Event{
			EntityType:  audit.EntityDocument,
			EntityID:    s.docID.String(),
			Action:      audit.ActionDocumentUploaded,
			PerformedBy: s.actor,
			Details:     map[string]any{"fileName": "passport.pdf"},
		})
		s.Require().True(res.Success)

		entries, err := s.store.ListActivityByOwner(s.ctx, s.ownerID, 10)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("Document uploaded: passport.pdf", entries[0].Description)
		s.Equal("req-1", entries[0].RequestID)
		s.Equal("10.0.0.1", entries[0].ClientIP)
		s.Equal("Chrome 120/Windows 10", entries[0].UserAgent)
	})

	s.Run("unresolvable owner is reported, not raised", func() {
		res := s.service.LogEvent(s.ctx, Event{
			EntityType:  audit.EntityDocument,
			EntityID:    id.NewDocumentID().String(),
			Action:      audit.ActionDocumentUploaded,
			PerformedBy: s.actor,
		})
		s.False(res.Success)
		s.ErrorIs(res.Err, errOwnerUnresolved)
		s.Contains(s.logs.String(), "audit log write failed")
	})
}

func (s *AuditServiceSuite) TestLogVerificationHistory() {
	vid := id.NewVerificationID()
	step := 2
	res := s.service.LogVerificationHistory(s.ctx, HistoryEvent{
		VerificationID: vid,
		Action:         audit.ActionDraftSaved,
		PerformedBy:    s.actor,
		Details:        map[string]any{"stepKeys": []string{"identity"}},
		StepNumber:     &step,
		OwnerID:        &s.ownerID,
	})
	s.Require().True(res.Success)

	history, err := s.store.ListHistoryByVerification(s.ctx, vid)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(res.ID, history[0].ID)
	s.Equal(2, *history[0].StepNumber)

	activity, err := s.store.ListActivityByOwner(s.ctx, s.ownerID, 10)
	s.Require().NoError(err)
	s.Require().Len(activity, 1)
	s.Equal(history[0].ID.String(), activity[0].Details["historyLogId"])
	s.Equal(audit.EntityVerification, activity[0].EntityType)
	s.Equal(vid.String(), activity[0].EntityID)
	s.NotContains(history[0].Details, "historyLogId")
}

func (s *AuditServiceSuite) TestRecordIsStrict() {
	broken := &failingStore{InMemoryStore: memory.NewInMemoryStore(), failActivity: true}
	err := s.service.Record(s.ctx, broken, HistoryEvent{
		VerificationID: id.NewVerificationID(),
		Action:         audit.ActionVerificationCompleted,
		PerformedBy:    s.actor,
		OwnerID:        &s.ownerID,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "disk full")
	s.Empty(s.logs.String(), "strict writes leave reporting to the caller")
}

func TestSummarizeUserAgent(t *testing.T) {
	assert.Equal(t, "", SummarizeUserAgent(""))
	got := SummarizeUserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15")
	require.Contains(t, got, "Safari 17/")
	assert.Contains(t, got, "Mac OS X")
}
