package initializers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
	"github.com/Kariqs/novastore-api/utils"
)

// Seed stores the default branding and home settings and, when
// ADMIN_EMAIL and ADMIN_PASSWORD are set, an admin account. Existing
// documents are left alone.
func Seed(ctx context.Context, cfg *Config, stores *store.Stores) error {
	if _, err := stores.Branding.FindByID(ctx, models.BrandingID); errors.Is(err, store.ErrNotFound) {
		branding := models.DefaultBranding()
		if err := stores.Branding.Insert(ctx, &branding); err != nil {
			return fmt.Errorf("seed branding: %w", err)
		}
		slog.Info("seeded default branding")
	} else if err != nil {
		return fmt.Errorf("seed branding: %w", err)
	}

	if _, err := stores.HomeSettings.FindByID(ctx, models.HomeSettingsID); errors.Is(err, store.ErrNotFound) {
		settings := models.DefaultHomeSettings()
		if err := stores.HomeSettings.Insert(ctx, &settings); err != nil {
			return fmt.Errorf("seed home settings: %w", err)
		}
		slog.Info("seeded default home settings")
	} else if err != nil {
		return fmt.Errorf("seed home settings: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := stores.Users.FindOne(ctx, store.Eq{Field: "email", Value: email})
	if err == nil {
		slog.Info("admin user already exists", "email", email)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := models.User{Name: "Administrator", Email: email, Password: hash, Role: models.RoleAdmin}
	if err := stores.Users.Insert(ctx, &admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
