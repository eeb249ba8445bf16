package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/config"
	"github.com/mertdogan/campusdesk/internal/pkg/auth"
)

// CreateDefaultData creates the bootstrap admin account and a starter
// department with one course so a fresh install is usable immediately.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	departmentRepo := repositories.NewDepartmentRepository(dbPool)
	courseRepo := repositories.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Admin account --- //
	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping admin account creation")
	} else {
		hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed admin password: %w", err)
		}

		admin := &models.User{
			Name:         "Administrator",
			Email:        cfg.Seed.AdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			Status:       models.StatusActive,
		}
		err = userRepo.Create(ctx, admin)
		switch {
		case errors.Is(err, repositories.ErrEmailAlreadyExists):
			lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Admin account already exists")
		case err != nil:
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		default:
			lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Default admin account created")
		}
	}

	// --- Starter department and course --- //
	generalDept := &models.Department{Name: "General Studies", Code: "GEN", Status: models.StatusActive}
	err := departmentRepo.Create(ctx, generalDept)
	switch {
	case errors.Is(err, repositories.ErrDepartmentAlreadyExists):
		departments, errGet := departmentRepo.List(ctx, "")
		if errGet != nil {
			lgr.Error().Err(errGet).Msg("Error looking up existing departments")
			return errors.Join(finalErr, errGet)
		}
		for _, d := range departments {
			if d.Code == "GEN" {
				generalDept = d
				break
			}
		}
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating starter department")
		return errors.Join(finalErr, err)
	}

	if generalDept.ID > 0 {
		baCourse := &models.Course{
			Name:          "Bachelor of Arts",
			Code:          "BA",
			DepartmentID:  generalDept.ID,
			DurationValue: 3,
			DurationUnit:  models.DurationYear,
			Status:        models.StatusActive,
		}
		err = courseRepo.Create(ctx, baCourse)
		if err != nil && !errors.Is(err, repositories.ErrCourseAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating starter course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
