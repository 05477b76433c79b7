package user

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
)

// Memory is an in-memory Store for tests and local development. Uniqueness is
// enforced under one lock across both secondary indexes, which gives the same
// atomic insert-or-conflict behavior the Postgres constraints do.
type Memory struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*models.User
	byGoogleID map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

func NewMemory() *Memory {
	return &Memory{
		byID:       make(map[uuid.UUID]*models.User),
		byGoogleID: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

func (s *Memory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byGoogleID[user.GoogleID]; ok {
		return ErrConflict
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return ErrConflict
	}

	cp := *user
	s.byID[cp.ID] = &cp
	s.byGoogleID[cp.GoogleID] = cp.ID
	s.byEmail[cp.Email] = cp.ID
	return nil
}

func (s *Memory) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

func (s *Memory) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byGoogleID[googleID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.lookup(id)
}

func (s *Memory) List(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Memory) UpdateRole(_ context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (s *Memory) UpdateProfile(_ context.Context, id uuid.UUID, name, avatar string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = name
	u.Avatar = avatar
	cp := *u
	return &cp, nil
}

func (s *Memory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byGoogleID, u.GoogleID)
	delete(s.byEmail, u.Email)
	delete(s.byID, id)
	return nil
}

// lookup must be called with at least the read lock held.
func (s *Memory) lookup(id uuid.UUID) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
