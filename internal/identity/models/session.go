package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks where a login attempt is in the OAuth handshake.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is the transient record that carries a login attempt from the
// initial redirect to the provider callback. It is not used for ordinary API
// authentication; bearer tokens are. State binds the provider round-trip to
// the session that started it. UserID stays nil until the callback resolves
// a user.
type Session struct {
	ID        uuid.UUID
	State     string
	UserID    uuid.UUID
	Status    SessionStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its TTL at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
