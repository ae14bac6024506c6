package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// TokenDuration is the validity period for JWT tokens
const TokenDuration = 24 * time.Hour

var (
	// ErrTokenInvalid indicates a token that failed signature or claim checks.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired indicates a token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// RoleClaim is the role snapshot embedded in a token.
type RoleClaim struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AccessLevel int    `json:"accessLevel"`
}

// Claims represents the signed token payload.
type Claims struct {
	UserID   string    `json:"userId"`
	Role     RoleClaim `json:"role"`
	LoggedIn bool      `json:"loggedIn"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service keyed by the process-level secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a token carrying a snapshot of the user's role and a
// loggedIn=true marker, valid for TokenDuration.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID.String(),
		Role: RoleClaim{
			ID:          user.Role.ID.String(),
			Title:       user.Role.Title,
			AccessLevel: user.Role.AccessLevel,
		},
		LoggedIn: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "docue",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token. Failures surface only as
// ErrTokenExpired or ErrTokenInvalid; no further detail is exposed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode returns the payload without verifying the signature. Only suitable
// for best-effort identity extraction; never use it to authorize anything.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
