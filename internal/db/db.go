package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/config"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// New creates a new database connection based on configuration
func New(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		// WAL mode and busy timeout for better concurrency
		dialector = sqlite.Open(cfg.DSN + "?_journal_mode=WAL&_busy_timeout=5000")
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey so
		// handlers can report them as a duplicate resource.
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite: single connection avoids locking issues; WAL still allows
		// concurrent readers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		slog.Info("Configured SQLite with WAL mode and single connection")
	} else {
		maxIdleConns := cfg.MaxIdleConns
		if maxIdleConns <= 0 {
			maxIdleConns = 10
		}
		maxOpenConns := cfg.MaxOpenConns
		if maxOpenConns <= 0 {
			maxOpenConns = 100
		}
		connMaxLifetime := cfg.ConnMaxLifetime
		if connMaxLifetime <= 0 {
			connMaxLifetime = 60
		}

		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

		slog.Info("Configured PostgreSQL connection pool",
			"max_idle_conns", maxIdleConns,
			"max_open_conns", maxOpenConns,
			"conn_max_lifetime_min", connMaxLifetime)
	}

	return db, nil
}

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Document{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedDefaultRoles(db); err != nil {
		return fmt.Errorf("failed to seed default roles: %w", err)
	}

	return nil
}

// seedDefaultRoles creates the closed set of roles (viewer, staff, admin)
func seedDefaultRoles(db *gorm.DB) error {
	for _, title := range []string{models.RoleViewer, models.RoleStaff, models.RoleAdmin} {
		var existing models.Role
		result := db.Where("title = ?", title).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			role := models.Role{Title: title}
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			slog.Info("Created default role", "role", title, "access_level", role.AccessLevel)
		}
	}

	return nil
}

// FindRoleByTitle looks up a role by its title.
func FindRoleByTitle(db *gorm.DB, title string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("title = ?", title).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
