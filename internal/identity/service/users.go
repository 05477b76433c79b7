package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
	userstore "github.com/dhanuj00123/HeadlessCms/internal/identity/store/user"
	dErrors "github.com/dhanuj00123/HeadlessCms/pkg/domainerrors"
)

// ProfileUpdate carries the caller-editable profile fields. Nil means "leave
// unchanged"; the request layer has already rejected any other field name.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// Profile returns the current user record by internal id.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch user profile")
	}
	return user, nil
}

// UpdateProfile applies the permitted profile fields and returns the updated
// record. The write is a single replace, so a rejected request never leaves a
// partial update behind.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	name := user.Name
	avatar := user.Avatar
	if update.Name != nil {
		name = *update.Name
	}
	if update.Avatar != nil {
		avatar = *update.Avatar
	}

	updated, err := s.users.UpdateProfile(ctx, id, name, avatar)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	return updated, nil
}

// ListUsers returns all directory records, oldest first.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// UpdateUserRole sets the role of the target user. The target may be given as
// an internal id or a provider id; see resolveTarget.
func (s *Service) UpdateUserRole(ctx context.Context, target, role string) (*models.User, error) {
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, user.ID, parsed)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user role")
	}

	s.logger.InfoContext(ctx, "user role updated",
		"user_id", updated.ID.String(),
		"role", updated.Role.String(),
	)
	return updated, nil
}

// DeleteUser removes the target user and returns the deleted record so the
// response can echo its id and email.
func (s *Service) DeleteUser(ctx context.Context, target string) (*models.User, error) {
	user, err := s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}

	s.logger.InfoContext(ctx, "user deleted",
		"user_id", user.ID.String(),
		"email", user.Email,
	)
	return user, nil
}

// resolveTarget resolves an admin-supplied identifier. Classification is
// structural: a UUID-shaped id is looked up in the internal index and a miss
// there is a genuine not-found, never a cue to try the provider index. Only a
// non-UUID id falls through to the provider id lookup.
func (s *Service) resolveTarget(ctx context.Context, target string) (*models.User, error) {
	if target == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user ID is required")
	}

	if id, parseErr := uuid.Parse(target); parseErr == nil {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, userstore.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
		}
		return user, nil
	}

	user, err := s.users.FindByGoogleID(ctx, target)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}
	return user, nil
}
