package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
	"github.com/danilloubr/workplace-tasks-challenge/internal/policy"
	"github.com/danilloubr/workplace-tasks-challenge/internal/repository"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  repository.UserRepository
}

func NewUserService(
	logger zerolog.Logger,
	users repository.UserRepository,
) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, actorID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().
				Str("user_id", actorID).
				Msg("profile requested for missing user")
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) error {
	user, err := s.users.GetByID(ctx, params.ActorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err = s.verifyPassword(params.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}

	taken, err := s.users.EmailTaken(ctx, params.Email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("profile update rejected, email already in use")
		return ErrEmailTaken
	}

	user.Email = params.Email
	user.UpdatedAt = time.Now()

	err = s.users.Update(ctx, user)
	if err != nil {
		// The unique index is the backstop for a race between the
		// check above and this write.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		// The user can vanish between the read and the write.
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("updated profile")
	return nil
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	user, err := s.users.GetByID(ctx, params.ActorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err = s.verifyPassword(params.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}

	passwordHash, err := argon2id.CreateHash(params.NewPassword, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return err
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()

	err = s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("changed password")
	return nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, actor Identity) ([]*models.User, error) {
	if !policy.IsAdmin(actor.Role) {
		s.logger.Warn().
			Str("actor_id", actor.UserID).
			Str("role", actor.Role.String()).
			Msg("non-admin attempted to list users")
		return nil, ErrForbidden
	}

	return s.users.List(ctx)
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string, actor Identity) (*models.User, error) {
	if !policy.IsAdmin(actor.Role) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams, actor Identity) (*models.User, error) {
	if !policy.IsAdmin(actor.Role) {
		return nil, ErrForbidden
	}

	role, err := models.ParseRole(params.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	taken, err := s.users.EmailTaken(ctx, params.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user, err := newUser(params.Email, params.Password, role)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to build user")
		return nil, err
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", user.Role.String()).
		Str("actor_id", actor.UserID).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, id string, params AdminUpdateUserParams, actor Identity) error {
	if !policy.IsAdmin(actor.Role) {
		return ErrForbidden
	}

	role, err := models.ParseRole(params.Role)
	if err != nil {
		return ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	taken, err := s.users.EmailTaken(ctx, params.Email, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	user.Email = params.Email
	user.Role = role

	// An empty password means "leave the credential alone".
	if params.Password != "" {
		passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to hash password")
			return err
		}
		user.PasswordHash = passwordHash
	}

	user.UpdatedAt = time.Now()

	err = s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("actor_id", actor.UserID).
		Msg("updated user")
	return nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id string, actor Identity) error {
	if !policy.IsAdmin(actor.Role) {
		return ErrForbidden
	}

	if id == actor.UserID {
		s.logger.Warn().
			Str("actor_id", actor.UserID).
			Msg("admin attempted to delete their own account")
		return ErrSelfDelete
	}

	err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().
		Str("user_id", id).
		Str("actor_id", actor.UserID).
		Msg("deleted user")
	return nil
}

func (s *userServiceImpl) BootstrapAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Debug().
			Str("email", email).
			Msg("bootstrap admin already exists")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	user, err := newUser(email, password, models.RoleAdmin)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", email).
		Msg("bootstrapped admin account")
	return nil
}

func (s *userServiceImpl) verifyPassword(password, hash string) error {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return err
	}
	if !match {
		return ErrPasswordMismatch
	}
	return nil
}

func newUser(email, password string, role models.Role) (*models.User, error) {
	userUUID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.User{
		ID:           userUUID.String(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
