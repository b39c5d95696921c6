package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/omkar/campuslms/internal/app/models"
	appRepos "github.com/omkar/campuslms/internal/app/repositories"
	"github.com/omkar/campuslms/internal/config"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/auth"
)

// CreateDefaultAdmin ensures a bootstrap admin account exists so the import
// endpoints are reachable on a fresh database. Errors are returned but the
// caller treats them as non-fatal.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.SeedEmail == "" || cfg.Admin.SeedPassword == "" {
		lgr.Info().Msg("Admin seed credentials not configured, skipping default admin creation")
		return nil
	}

	adminRepo := appRepos.NewAdminRepository(dbPool)

	existing, err := adminRepo.GetByEmail(ctx, cfg.Admin.SeedEmail)
	if err != nil && !errors.Is(err, apperrors.ErrAccountNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing admin account")
		return err
	}
	if existing != nil {
		lgr.Info().Str("email", cfg.Admin.SeedEmail).Msg("Admin account already exists, skipping creation")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.SeedPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin seed password")
		return err
	}

	admin := &appModels.Admin{
		Name:     cfg.Admin.SeedName,
		Email:    cfg.Admin.SeedEmail,
		Password: hashedPassword,
	}

	adminID, err := adminRepo.Insert(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Str("email", cfg.Admin.SeedEmail).Msg("Default admin account created")
	return nil
}
