// Package session stores the transient handshake sessions. A session exists
// only between "login initiated" and logout or TTL expiry; it is never
// consulted for ordinary bearer-token authentication.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/pkg/sentinel"
)

var ErrNotFound = sentinel.ErrNotFound

// Store persists handshake sessions with a TTL. Expired sessions behave as
// absent on read.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	// FindByState resolves the session that issued the given OAuth state
	// nonce. The provider echoes the state back on callback; it is the only
	// key available at that point.
	FindByState(ctx context.Context, state string) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
