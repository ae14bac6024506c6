package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// Service implements login, logout and session lookup against the identity
// repository. The persistent loggedIn flag on the user record is the
// authoritative session bit; tokens only carry a snapshot of it.
type Service struct {
	db     *gorm.DB
	tokens *TokenService
}

// NewService creates an auth service.
func NewService(db *gorm.DB, tokens *TokenService) *Service {
	return &Service{db: db, tokens: tokens}
}

// Tokens exposes the underlying token service.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login verifies credentials, flips the loggedIn flag and mints a token.
// A missing user and a bad password are reported as distinct errors.
func (s *Service) Login(username, password string) (*LoginResponse, error) {
	var user models.User
	result := s.db.Preload("Role").Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Warn("Login attempt with non-existent username", "username", username)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", result.Error)
	}

	if !user.VerifyPassword(password) {
		slog.Warn("Login attempt with incorrect password", "username", username)
		return nil, ErrInvalidCredentials
	}

	// Idempotent: a concurrent login writes the same value.
	if err := s.db.Model(&user).Update("logged_in", true).Error; err != nil {
		return nil, fmt.Errorf("failed to update session state: %w", err)
	}
	user.LoggedIn = true

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	return &LoginResponse{Token: token, User: &user}, nil
}

// Logout verifies the token and clears the loggedIn flag for the user it
// identifies. Logging out an already logged-out user is a no-op.
func (s *Service) Logout(tokenString string) error {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrTokenInvalid
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("logged_in", false)
	if result.Error != nil {
		return fmt.Errorf("failed to update session state: %w", result.Error)
	}

	slog.Info("User logged out", "user_id", userID)
	return nil
}

// Session resolves a token into the current session state. Invalid, expired
// and missing tokens all collapse into a logged-out session.
func (s *Service) Session(tokenString string) *SessionResponse {
	if tokenString == "" {
		return &SessionResponse{LoggedIn: false}
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return &SessionResponse{LoggedIn: false}
	}

	var user models.User
	if err := s.db.Preload("Role").Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return &SessionResponse{LoggedIn: false}
	}

	return &SessionResponse{LoggedIn: user.LoggedIn, User: &user}
}
