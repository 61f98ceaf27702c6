package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/config"
	"github.com/brainswarm/booking-api/internal/domain"
)

// EnsureAdmin creates the seed administrator when no user holds its username.
// Running it again is a no-op.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, cfg.Username)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn("seed admin username belongs to a non-admin account",
				zap.String("username", cfg.Username), zap.Int64("user_id", existing.ID))
		} else {
			s.logger.Debug("seed admin present", zap.String("username", cfg.Username))
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("look up seed admin: %w", err)
	}

	in := SignUpInput{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: cfg.Password,
	}
	if cfg.FullName != "" {
		fullName := cfg.FullName
		in.FullName = &fullName
	}

	admin, err := s.createUser(ctx, in, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("create seed admin: %w", err)
	}
	s.logger.Info("seed admin created", zap.Int64("user_id", admin.ID), zap.String("username", admin.Username))
	return admin, nil
}
