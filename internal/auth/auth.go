package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

var (
	// ErrInvalidCredentials indicates a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates the login username does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized indicates a missing or unusable caller identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login or signup response
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SessionResponse is returned by the session endpoint. It never carries an
// error: any verification failure collapses into LoggedIn=false.
type SessionResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *models.User `json:"user,omitempty"`
}

// TokenFromRequest extracts the bearer token from the x-access-token header,
// falling back to a "token" field in a JSON request body. The body is restored
// so later binding still works.
func TokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("x-access-token"); token != "" {
		return token
	}

	if c.Request.Body == nil || !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Token
}
