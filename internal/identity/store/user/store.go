// Package user provides persistence for identity records. Implementations
// enforce the google_id and email uniqueness invariants; callers recover from
// ErrConflict, they do not prevent it.
package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/pkg/sentinel"
)

// Store errors. Aliased so call sites read naturally next to the interface.
var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)

// Store is the user directory. All writes are single atomic operations; the
// store is the arbiter of uniqueness.
type Store interface {
	// Create inserts a new user. Returns ErrConflict if google_id or email
	// already exists.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// UpdateRole sets the role for an existing user. Returns ErrNotFound if
	// the id does not resolve.
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	// UpdateProfile replaces the mutable profile fields (name, avatar). The
	// service computes the resulting values; the store writes them as given.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
