package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/doruk/eduhub/internal/app/models"
	appRepos "github.com/doruk/eduhub/internal/app/repositories"
	"github.com/doruk/eduhub/internal/config"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// CreateDefaultData ensures the bootstrap admin account exists. Every
// other account is created through the registration endpoint, which
// only issues teacher and student roles.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("Admin seed credentials not configured, skipping admin creation")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	existing, err := userRepo.GetUserByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("error checking for admin account: %w", err)
	}
	if existing != nil {
		lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Admin account already exists")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &appModels.User{
		Email:     cfg.Seed.AdminEmail,
		Password:  string(hashed),
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleAdmin,
		IsActive:  true,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		return fmt.Errorf("error creating admin account: %w", err)
	}

	if err := profileRepo.CreateProfile(ctx, &appModels.Profile{UserID: adminID}); err != nil {
		lgr.Warn().Err(err).Msg("Failed to create admin profile")
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Int64("id", adminID).Msg("Admin account created")
	return nil
}
