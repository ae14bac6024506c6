package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/api/middleware"
	"github.com/kevgathuku/docue-stack-sub000/internal/authz"
)

// ErrorResponse is the JSON body attached to every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentCaller returns the request-scoped caller. Handlers registered behind
// the Authenticate middleware can rely on it being present.
func currentCaller(c *gin.Context) (authz.Caller, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized Access. Please login first"})
		c.Abort()
	}
	return caller, ok
}

// isDuplicate reports whether err is a unique-index violation.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
