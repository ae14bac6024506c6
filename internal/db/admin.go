package db

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// CreateDefaultAdmin creates a default admin user if ADMIN_USERNAME and
// ADMIN_PASSWORD are set and no users exist in the database.
func CreateDefaultAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	email := os.Getenv("ADMIN_EMAIL")

	if username == "" || password == "" {
		slog.Info("No ADMIN_USERNAME or ADMIN_PASSWORD set, skipping default admin creation")
		return nil
	}

	if email == "" {
		email = fmt.Sprintf("%s@docue.local", username)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		slog.Info("Users already exist, skipping default admin creation")
		return nil
	}

	adminRole, err := FindRoleByTitle(db, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("admin role missing, run migrations first: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Name:         models.Name{First: "Admin", Last: "User"},
		PasswordHash: string(hashedPassword),
		RoleID:       adminRole.ID,
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Default admin user created", "username", username, "email", email)
	return nil
}
