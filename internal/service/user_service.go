package service

import (
	"context"
	"fmt"
	"strings"

	"floralshop/internal/auth"
	"floralshop/internal/model"
	"floralshop/internal/repository"

	"github.com/rs/zerolog"
)

type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*auth.Identity, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.NewValidationError(model.ErrCodeMissingField, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info().Str("email", email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return &auth.Identity{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
