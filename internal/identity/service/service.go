// Package service orchestrates the login flow and the user-facing directory
// operations. It owns the translation from store sentinels and provider
// failures into coded domain errors; nothing below it crosses the transport
// boundary untranslated.
package service

import (
	"log/slog"
	"time"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/metrics"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/provider"
	sessionstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/session"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
)

// TokenMinter issues bearer credentials for resolved users.
type TokenMinter interface {
	Mint(user *models.User) (string, error)
}

// Service drives the OAuth handshake and the directory operations behind the
// protected routes.
type Service struct {
	users      userstore.Store
	sessions   sessionstore.Store
	provider   provider.Provider
	tokens     TokenMinter
	metrics    *metrics.Metrics
	logger     *slog.Logger
	sessionTTL time.Duration
	clock      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(
	users userstore.Store,
	sessions sessionstore.Store,
	idp provider.Provider,
	tokens TokenMinter,
	m *metrics.Metrics,
	logger *slog.Logger,
	sessionTTL time.Duration,
	opts ...Option,
) *Service {
	s := &Service{
		users:      users,
		sessions:   sessions,
		provider:   idp,
		tokens:     tokens,
		metrics:    m,
		logger:     logger,
		sessionTTL: sessionTTL,
		clock:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}
