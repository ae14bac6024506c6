package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/auth"
	"github.com/kevgathuku/docue-stack-sub000/internal/authz"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// CallerContextKey is the key used to store the caller in the Gin context
const CallerContextKey = "caller"

// Authenticate is the request gate for protected endpoints. It extracts the
// bearer token, verifies it, confirms the session is still open, and stores a
// request-scoped caller identity in the context.
//
// The caller's role is taken from the token snapshot; the persistent loggedIn
// flag is cross-checked against storage so a logout takes effect immediately.
func Authenticate(db *gorm.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.TokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "No token provided."})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to authenticate token."})
			c.Abort()
			return
		}

		if !claims.LoggedIn || !sessionOpen(db, claims.UserID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized Access. Please login first"})
			c.Abort()
			return
		}

		caller := authz.Caller{
			ID: claims.UserID,
			Role: authz.Role{
				ID:          claims.Role.ID,
				Title:       claims.Role.Title,
				AccessLevel: claims.Role.AccessLevel,
			},
			LoggedIn: true,
		}
		if claims.ExpiresAt != nil {
			caller.TokenExpiry = claims.ExpiresAt.Time
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// sessionOpen reports whether the user still has the persistent loggedIn flag
// set. A token pointing at a logged-out or deleted user is unauthenticated
// regardless of signature validity.
func sessionOpen(db *gorm.DB, userID string) bool {
	var user models.User
	if err := db.Select("id", "logged_in").Where("id = ?", userID).First(&user).Error; err != nil {
		return false
	}
	return user.LoggedIn
}

// CallerFromContext extracts the authenticated caller placed by Authenticate.
func CallerFromContext(c *gin.Context) (authz.Caller, bool) {
	value, exists := c.Get(CallerContextKey)
	if !exists {
		return authz.Caller{}, false
	}
	caller, ok := value.(authz.Caller)
	return caller, ok
}

// RequireAdmin ensures the caller holds the admin role. Must run after
// Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized Access. Please login first"})
			c.Abort()
			return
		}

		if !authz.IsAdmin(caller) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized Access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
