package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/pkg/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	now   time.Time
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	s.store = NewMemory(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newSession() *models.Session {
	return &models.Session{
		ID:        uuid.New(),
		State:     uuid.NewString(),
		Status:    models.SessionStatusPending,
		CreatedAt: s.now,
		ExpiresAt: s.now.Add(15 * time.Minute),
	}
}

func (s *MemoryStoreSuite) TestSaveAndLookups() {
	sess := s.newSession()
	s.Require().NoError(s.store.Save(s.ctx, sess))

	byID, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.State, byID.State)

	byState, err := s.store.FindByState(s.ctx, sess.State)
	s.Require().NoError(err)
	s.Equal(sess.ID, byState.ID)
}

func (s *MemoryStoreSuite) TestExpiryBehavesAsAbsent() {
	sess := s.newSession()
	s.Require().NoError(s.store.Save(s.ctx, sess))

	s.now = s.now.Add(16 * time.Minute)

	_, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByState(s.ctx, sess.State)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestSaveUpdatesExistingSession() {
	sess := s.newSession()
	s.Require().NoError(s.store.Save(s.ctx, sess))

	sess.UserID = uuid.New()
	sess.Status = models.SessionStatusCompleted
	s.Require().NoError(s.store.Save(s.ctx, sess))

	found, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCompleted, found.Status)
	s.Equal(sess.UserID, found.UserID)
}

func (s *MemoryStoreSuite) TestDelete() {
	sess := s.newSession()
	s.Require().NoError(s.store.Save(s.ctx, sess))
	s.Require().NoError(s.store.Delete(s.ctx, sess.ID))

	_, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// Deleting an absent session is not an error; logout is idempotent.
	s.Require().NoError(s.store.Delete(s.ctx, sess.ID))
}
