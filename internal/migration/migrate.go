package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/inkwell/blog-backend/internal/config"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/pkg/auth"
	"github.com/inkwell/blog-backend/pkg/logger"
)

// Run applies the schema and seeds the initial admin account
func Run(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Comment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return seedAdmin(db, cfg)
}

// seedAdmin creates the first admin account on an empty user table. Existing
// installations are never touched.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	email := cfg.App.AdminEmail
	password := cfg.App.AdminPassword
	if email == "" || password == "" {
		logger.Warn("no admin credentials configured, skipping admin seed")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	name := cfg.App.AdminDisplayName
	if name == "" {
		name = "Administrator"
	}

	admin := &domain.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("seeded admin account %s", email)
	return nil
}
