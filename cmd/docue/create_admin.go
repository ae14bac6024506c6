package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevgathuku/docue-stack-sub000/internal/auth"
	"github.com/kevgathuku/docue-stack-sub000/internal/config"
	"github.com/kevgathuku/docue-stack-sub000/internal/db"
	"github.com/kevgathuku/docue-stack-sub000/internal/logger"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username> <email> <password>",
	Short: "Create an admin user directly in the database",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, email, password := args[0], args[1], args[2]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Init(cfg.Log.Format, cfg.Log.Level)

		database, err := db.New(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Migrate(database); err != nil {
			return err
		}

		adminRole, err := db.FindRoleByTitle(database, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("admin role missing: %w", err)
		}

		passwordHash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		user := models.User{
			Username:     username,
			Email:        email,
			Name:         models.Name{First: "Admin", Last: "User"},
			PasswordHash: passwordHash,
			RoleID:       adminRole.ID,
		}

		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		fmt.Printf("Admin user created\n")
		fmt.Printf("ID: %s\n", user.ID)
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email: %s\n", user.Email)
		return nil
	},
}
