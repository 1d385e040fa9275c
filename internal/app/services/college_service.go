package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
)

// CollegeService manages colleges, the tenancy roots of the schema.
type CollegeService struct {
	store *repositories.Store
}

// NewCollegeService creates a new college service.
func NewCollegeService(store *repositories.Store) *CollegeService {
	return &CollegeService{store: store}
}

// Create inserts a new college. College codes are globally unique.
func (s *CollegeService) Create(ctx context.Context, college *models.College) error {
	err := s.store.InsertCollege(ctx, college)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
			fmt.Sprintf("College with code %s already exists", college.Code))
	}
	return err
}

// GetAll lists every college.
func (s *CollegeService) GetAll(ctx context.Context) ([]*models.College, error) {
	return s.store.ListColleges(ctx)
}

// GetByID fetches one college.
func (s *CollegeService) GetByID(ctx context.Context, id int64) (*models.College, error) {
	college, err := s.store.GetCollegeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if college == nil {
		return nil, apperrors.NewResourceNotFoundError("College not found")
	}
	return college, nil
}
