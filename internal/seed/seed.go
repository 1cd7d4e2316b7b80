package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/arjunrk/feeledger/internal/app/models"
	appRepos "github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/config"
	"github.com/arjunrk/feeledger/internal/pkg/apperrors"
	"github.com/arjunrk/feeledger/internal/pkg/auth"
)

// referenceDepartments is the department catalog seeded on startup.
// Upserts keep manual fee-group reassignments from being lost: only
// name, course type and duration are refreshed for existing rows.
var referenceDepartments = []appModels.Department{
	{Code: "CSE", Name: "Computer Science and Engineering", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupA},
	{Code: "ECE", Name: "Electronics and Communication Engineering", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupA},
	{Code: "EEE", Name: "Electrical and Electronics Engineering", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupB},
	{Code: "MECH", Name: "Mechanical Engineering", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupB},
	{Code: "CIVIL", Name: "Civil Engineering", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupB},
	{Code: "IT", Name: "Information Technology", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupA},
	{Code: "AIML", Name: "Artificial Intelligence and Machine Learning", CourseType: appModels.CourseBE, DurationYears: 4, FeeGroup: appModels.FeeGroupA},
	{Code: "ME-VLSI", Name: "M.E VLSI Design", CourseType: appModels.CourseME, DurationYears: 2, FeeGroup: appModels.FeeGroupC},
	{Code: "ME-CSE", Name: "M.E Computer Science", CourseType: appModels.CourseME, DurationYears: 2, FeeGroup: appModels.FeeGroupC},
	{Code: "ME-SE", Name: "M.E Structural Engineering", CourseType: appModels.CourseME, DurationYears: 2, FeeGroup: appModels.FeeGroupC},
	{Code: "ME-PE", Name: "M.E Power Electronics", CourseType: appModels.CourseME, DurationYears: 2, FeeGroup: appModels.FeeGroupC},
}

// CreateDefaultData seeds the department catalog and the default admin
// account. Errors are collected so a single bad row does not abort the
// rest of the seed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (departments, admin user)...")
	var finalErr error

	for i := range referenceDepartments {
		d := referenceDepartments[i]
		if err := departmentRepo.Upsert(ctx, &d); err != nil {
			lgr.Error().Err(err).Str("code", d.Code).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	adminEmail := cfg.Admin.Email
	if adminEmail == "" {
		return finalErr
	}

	_, err := userRepo.GetByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		// Admin already present.
	case errors.Is(err, apperrors.ErrUserNotFound):
		if cfg.Admin.Password == "" {
			lgr.Warn().Str("email", adminEmail).Msg("Admin user missing and no ADMIN_PASSWORD configured, skipping admin seed")
			return finalErr
		}
		lgr.Info().Str("email", adminEmail).Msg("Creating default admin user...")
		hashed, hashErr := auth.HashPassword(cfg.Admin.Password)
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			return errors.Join(finalErr, hashErr)
		}
		admin := &appModels.User{
			Email:       adminEmail,
			Password:    hashed,
			DisplayName: "Administrator",
			RoleType:    appModels.RoleAdmin,
			IsActive:    true,
		}
		if createErr := userRepo.Create(ctx, admin); createErr != nil && !errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(createErr).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, createErr)
		}
	default:
		lgr.Error().Err(err).Msg("Error checking for existing admin user")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
