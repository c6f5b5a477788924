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

// EnsureAdmin creates the bootstrap admin account at process start when no
// account with the configured email exists. The password is hashed exactly
// like a normal registration.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, name, email, password string, logger zerolog.Logger) error {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		logger.Info().Str("email", existing.Email).Msg("admin account already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	logger.Info().Str("email", created.Email).Msg("admin account seeded")
	return nil
}
