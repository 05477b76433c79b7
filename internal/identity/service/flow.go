package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	"github.com/dhanuj00123/HeadlessCms/internal/identity/provider"
	sessionstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/session"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// LoginStart is the result of initiating a login: where to send the caller
// and the pending session that anchors the handshake.
type LoginStart struct {
	AuthURL string
	Session *models.Session
}

// CallbackResult carries the minted credential and the resolved user back to
// the transport layer.
type CallbackResult struct {
	Token string
	User  *models.User
}

// InitiateLogin creates a pending handshake session and returns the provider
// consent URL. The state nonce is the only binding between this session and
// the eventual callback.
func (s *Service) InitiateLogin(ctx context.Context) (*LoginStart, error) {
	now := s.clock()
	sess := &models.Session{
		ID:        uuid.New(),
		State:     uuid.NewString(),
		Status:    models.SessionStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start login session")
	}

	return &LoginStart{
		AuthURL: s.provider.AuthCodeURL(sess.State),
		Session: sess,
	}, nil
}

// HandleCallback completes the handshake: it validates the state against a
// pending session, resolves the provider profile, finds or creates the local
// user, and mints a bearer token.
func (s *Service) HandleCallback(ctx context.Context, state, code string) (*CallbackResult, error) {
	if state == "" || code == "" {
		return nil, s.rejected(ctx, nil, "callback missing state or code")
	}

	sess, err := s.sessions.FindByState(ctx, state)
	if err != nil {
		return nil, s.rejected(ctx, err, "callback state does not match a pending session")
	}

	profile, err := s.provider.ResolveProfile(ctx, code)
	if err != nil {
		return nil, s.rejected(ctx, err, "provider rejected authorization code")
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		return nil, err
	}

	sess.UserID = user.ID
	sess.Status = models.SessionStatusCompleted
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to complete login session")
	}

	tok, err := s.tokens.Mint(user)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate authentication token")
	}

	s.metrics.LoginsTotal.Inc()
	s.logger.InfoContext(ctx, "login completed",
		"user_id", user.ID.String(),
		"session_id", sess.ID.String(),
	)

	return &CallbackResult{Token: tok, User: user}, nil
}

// findOrCreate looks up the user by provider id, creating the record on first
// login. Two concurrent first logins can both miss the lookup; the store's
// unique constraint picks the winner and the loser recovers by re-reading the
// now-committed record. Both callers succeed with the same user.
func (s *Service) findOrCreate(ctx context.Context, profile *provider.Profile) (*models.User, error) {
	user, err := s.users.FindByGoogleID(ctx, profile.GoogleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}

	candidate := &models.User{
		ID:        uuid.New(),
		GoogleID:  profile.GoogleID,
		Email:     profile.Email,
		Name:      profile.Name,
		Avatar:    profile.Avatar,
		Role:      models.RoleUser,
		CreatedAt: s.clock(),
	}

	err = s.users.Create(ctx, candidate)
	if err == nil {
		s.metrics.UsersCreated.Inc()
		s.logger.InfoContext(ctx, "user created",
			"user_id", candidate.ID.String(),
			"email", candidate.Email,
		)
		return candidate, nil
	}
	if !errors.Is(err, userstore.ErrConflict) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	// A concurrent first login won the insert; its record is committed now.
	s.metrics.CreateConflicts.Inc()
	user, err = s.users.FindByGoogleID(ctx, profile.GoogleID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user after create conflict")
	}
	return user, nil
}

// ResolveSession deserializes a session back into the current user record.
// The session holds only a pointer to the user; role and email always come
// fresh from the directory, never from handshake state.
func (s *Service) ResolveSession(ctx context.Context, sessionID uuid.UUID) (*models.User, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup session")
	}
	if sess.UserID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "session not yet authenticated")
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}
	return user, nil
}

// Logout discards the handshake session. Previously issued bearer tokens stay
// valid until natural expiry; there is no revocation list.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if user, err := s.ResolveSession(ctx, sessionID); err == nil {
		s.logger.InfoContext(ctx, "logout", "user_id", user.ID.String())
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to discard session")
	}
	s.metrics.SessionsDiscarded.Inc()
	return nil
}

// rejected records an authentication failure and returns the generic
// unauthorized error the caller sees. Specific causes stay in the logs.
func (s *Service) rejected(ctx context.Context, cause error, reason string) error {
	s.metrics.AuthFailures.Inc()
	s.logger.WarnContext(ctx, "authentication rejected",
		"reason", reason,
		"error", cause,
	)
	if cause != nil {
		return dErrors.Wrap(cause, dErrors.CodeUnauthorized, "authentication failed")
	}
	return dErrors.New(dErrors.CodeUnauthorized, "authentication failed")
}
