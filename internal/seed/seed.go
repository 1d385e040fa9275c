package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/config"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// Run creates the default college and its admin account when they do not
// exist yet, so a fresh deployment is immediately usable.
func Run(ctx context.Context, store *repositories.Store, cfg *config.Config) error {
	if cfg.Seed.AdminPassword == "" {
		logger.Warn().Msg("Seed admin password not configured, skipping seed")
		return nil
	}

	collegeID, err := store.CollegeIDByCode(ctx, cfg.Seed.CollegeCode)
	if err != nil {
		return fmt.Errorf("failed to look up seed college: %w", err)
	}
	if collegeID == 0 {
		college := &models.College{Code: cfg.Seed.CollegeCode, Name: cfg.Seed.CollegeName}
		if err := store.InsertCollege(ctx, college); err != nil {
			return fmt.Errorf("failed to create seed college: %w", err)
		}
		collegeID = college.ID
		logger.Info().Str("code", college.Code).Msg("Seed college created")
	}

	userID, err := store.UserIDByUsername(ctx, cfg.Seed.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}
	if userID != 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		CollegeID: collegeID,
		Username:  cfg.Seed.AdminUsername,
		Password:  string(hashed),
		Name:      "Administrator",
		RoleType:  models.RoleAdmin,
	}
	if err := store.InsertUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}
	if err := store.InsertAdminProfile(ctx, &models.Admin{UserID: user.ID, CollegeID: collegeID}); err != nil {
		return fmt.Errorf("failed to create seed admin profile: %w", err)
	}
	logger.Info().Str("username", user.Username).Msg("Seed admin created")
	return nil
}
