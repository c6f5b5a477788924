package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alihassan1221/service-booking-platform/internal/core/domain"
	"github.com/alihassan1221/service-booking-platform/internal/core/ports"
)

// UserService implements admin-facing account management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns every account, newest first. Password material never appears
// in the result; the hash is excluded from serialization at the domain level.
func (s *UserService) List(ctx context.Context, actor ports.Actor) ([]*domain.User, error) {
	if !domain.CanListUsers(actor.Role) {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindAll(ctx)
}

// CreateManager creates a manager account. The role is forced to manager
// regardless of the request payload.
func (s *UserService) CreateManager(ctx context.Context, actor ports.Actor, input ports.CreateManagerInput) (*domain.User, error) {
	if !domain.CanManageUsers(actor.Role) {
		return nil, domain.ErrUnauthorized
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "name, email and password are required"}
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("email", created.Email).
		Str("created_by", actor.ID).
		Msg("manager account created")
	return created, nil
}

// Update changes name, email and/or role of an account. A new email must not
// collide with a different existing account; role changes are admin only.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.CanUpdateUser(actor.Role) {
		return nil, domain.ErrUnauthorized
	}
	if input.Role != nil && !domain.CanChangeRole(actor.Role) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		role, ok := domain.ParseRole(*input.Role)
		if !ok {
			return nil, &domain.ValidationError{Field: "role", Message: "invalid role"}
		}
		user.Role = role
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", updated.ID).
		Str("role", string(updated.Role)).
		Str("updated_by", actor.ID).
		Msg("user account updated")
	return updated, nil
}

// Delete removes an account. Admin accounts can never be deleted.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrAdminUndeletable
	}
	if !domain.CanDeleteUser(actor.Role, user.Role) {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", id).
		Str("deleted_by", actor.ID).
		Msg("user account deleted")
	return nil
}
