package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// AcademicYearService manages academic years. At most one year per college
// is active; activation is transactional so the invariant holds under
// concurrent writers.
type AcademicYearService struct {
	store *repositories.Store
}

// NewAcademicYearService creates a new academic year service.
func NewAcademicYearService(store *repositories.Store) *AcademicYearService {
	return &AcademicYearService{store: store}
}

// Create inserts an academic year, inactive. Activation is a separate,
// explicit step.
func (s *AcademicYearService) Create(ctx context.Context, year *models.AcademicYear) error {
	year.IsActive = false
	err := s.store.InsertAcademicYear(ctx, year)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
			fmt.Sprintf("Academic year %s already exists in this college", year.Name))
	}
	return err
}

// GetAll lists the academic years of one college.
func (s *AcademicYearService) GetAll(ctx context.Context, collegeID int64) ([]*models.AcademicYear, error) {
	return s.store.ListAcademicYears(ctx, collegeID)
}

// SetActive makes one year the college's active year, deactivating its
// siblings in the same transaction.
func (s *AcademicYearService) SetActive(ctx context.Context, collegeID, yearID int64) error {
	year, err := s.store.GetAcademicYearByID(ctx, yearID)
	if err != nil {
		return err
	}
	if year == nil || year.CollegeID != collegeID {
		return apperrors.NewResourceNotFoundError("Academic year not found")
	}
	if err := s.store.ActivateAcademicYear(ctx, collegeID, yearID); err != nil {
		return err
	}
	logger.Info().Int64("collegeId", collegeID).Int64("yearId", yearID).Msg("Academic year activated")
	return nil
}

// GetActive returns the college's single active year, or a not-found error
// when none is active.
func (s *AcademicYearService) GetActive(ctx context.Context, collegeID int64) (*models.AcademicYear, error) {
	year, err := s.store.GetActiveAcademicYear(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperrors.NewResourceNotFoundError("No active academic year for this college")
	}
	return year, nil
}
