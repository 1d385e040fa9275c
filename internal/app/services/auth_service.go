package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/auth"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// AuthStore resolves users for credential checks. GetUserByUsername returns
// nil when the username is unknown.
type AuthStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles login and token issuance.
type AuthService struct {
	store      AuthStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service.
func NewAuthService(store AuthStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{store: store, jwtService: jwtService}
}

// Login verifies credentials and returns a token pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		RoleType:     string(user.RoleType),
	}, nil
}
