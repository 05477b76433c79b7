package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
)

// Clock lets tests control expiry without sleeping.
type Clock func() time.Time

// Memory is an in-memory Store for tests and local development. Expiry is
// checked lazily on read; stale entries are dropped then.
type Memory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.Session
	byState map[string]uuid.UUID
	clock   Clock
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) MemoryOption {
	return func(s *Memory) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	s := &Memory{
		byID:    make(map[uuid.UUID]*models.Session),
		byState: make(map[string]uuid.UUID),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Memory) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.byID[cp.ID] = &cp
	s.byState[cp.State] = cp.ID
	return nil
}

func (s *Memory) FindByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

func (s *Memory) FindByState(_ context.Context, state string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byState[state]
	if !ok {
		return nil, ErrNotFound
	}
	return s.lookup(id)
}

func (s *Memory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
	return nil
}

// lookup must be called with the write lock held; it evicts expired entries.
func (s *Memory) lookup(id uuid.UUID) (*models.Session, error) {
	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(s.clock()) {
		s.remove(id)
		return nil, ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *Memory) remove(id uuid.UUID) {
	if sess, ok := s.byID[id]; ok {
		delete(s.byState, sess.State)
		delete(s.byID, id)
	}
}
