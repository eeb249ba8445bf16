package services

import (
	"context"
	"errors"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/auth"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService handles login and token issuance
type AuthService struct {
	users userStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users userStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies credentials and issues an access token. Disabled accounts
// cannot log in even with a correct password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewOperationFailedError("Login failed", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Token generation failed")
		return nil, apperrors.NewOperationFailedError("Login failed", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}
