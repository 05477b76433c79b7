package user

import (
	"context"
	"fmt"
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
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newUser(googleID, email string) *models.User {
	return &models.User{
		ID:        uuid.New(),
		GoogleID:  googleID,
		Email:     email,
		Name:      "Test User",
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
}

func (s *MemoryStoreSuite) TestCreateAndLookups() {
	s.Run("creates and finds by internal id", func() {
		u := s.newUser("g-001", "a@x.com")
		s.Require().NoError(s.store.Create(s.ctx, u))

		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(u.Email, found.Email)
		s.Equal(models.RoleUser, found.Role)
	})

	s.Run("finds by google id", func() {
		u := s.newUser("g-002", "b@x.com")
		s.Require().NoError(s.store.Create(s.ctx, u))

		found, err := s.store.FindByGoogleID(s.ctx, "g-002")
		s.Require().NoError(err)
		s.Equal(u.ID, found.ID)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByGoogleID(s.ctx, "g-missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestUniqueness() {
	s.Run("rejects duplicate google id", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("g-dup", "one@x.com")))

		err := s.store.Create(s.ctx, s.newUser("g-dup", "two@x.com"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects duplicate email", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("g-a", "same@x.com")))

		err := s.store.Create(s.ctx, s.newUser("g-b", "same@x.com"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("conflicting create leaves no partial state", func() {
		winner := s.newUser("g-race", "race@x.com")
		s.Require().NoError(s.store.Create(s.ctx, winner))

		loser := s.newUser("g-race", "race@x.com")
		s.Require().ErrorIs(s.store.Create(s.ctx, loser), sentinel.ErrConflict)

		_, err := s.store.FindByID(s.ctx, loser.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestUpdateRole() {
	u := s.newUser("g-role", "role@x.com")
	s.Require().NoError(s.store.Create(s.ctx, u))

	updated, err := s.store.UpdateRole(s.ctx, u.ID, models.RoleAdmin)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, updated.Role)

	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, found.Role)

	_, err = s.store.UpdateRole(s.ctx, uuid.New(), models.RoleEditor)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateProfile() {
	u := s.newUser("g-prof", "prof@x.com")
	s.Require().NoError(s.store.Create(s.ctx, u))

	updated, err := s.store.UpdateProfile(s.ctx, u.ID, "New Name", "https://cdn.x.com/a.png")
	s.Require().NoError(err)
	s.Equal("New Name", updated.Name)
	s.Equal("https://cdn.x.com/a.png", updated.Avatar)
}

func (s *MemoryStoreSuite) TestDelete() {
	u := s.newUser("g-del", "del@x.com")
	s.Require().NoError(s.store.Create(s.ctx, u))

	s.Require().NoError(s.store.Delete(s.ctx, u.ID))

	_, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Run("frees the unique indexes", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("g-del", "del@x.com")))
	})

	s.Run("deleting twice returns ErrNotFound", func() {
		s.Require().ErrorIs(s.store.Delete(s.ctx, u.ID), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestListOrdering() {
	base := time.Now()
	for i := 0; i < 3; i++ {
		u := s.newUser(fmt.Sprintf("g-%d", i), fmt.Sprintf("u%d@x.com", i))
		u.CreatedAt = base.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.store.Create(s.ctx, u))
	}

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("g-0", users[0].GoogleID)
	s.Equal("g-2", users[2].GoogleID)
}
