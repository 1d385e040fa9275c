package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
)

// DepartmentService manages departments and their sections.
type DepartmentService struct {
	store *repositories.Store
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(store *repositories.Store) *DepartmentService {
	return &DepartmentService{store: store}
}

// Create inserts a department. Codes are unique per college, not globally.
func (s *DepartmentService) Create(ctx context.Context, department *models.Department) error {
	college, err := s.store.GetCollegeByID(ctx, department.CollegeID)
	if err != nil {
		return err
	}
	if college == nil {
		return apperrors.NewResourceNotFoundError("College not found")
	}
	err = s.store.InsertDepartment(ctx, department)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
			fmt.Sprintf("Department with code %s already exists in this college", department.Code))
	}
	return err
}

// GetAll lists the departments of one college.
func (s *DepartmentService) GetAll(ctx context.Context, collegeID int64) ([]*models.Department, error) {
	return s.store.ListDepartments(ctx, collegeID)
}

// CreateSection inserts a section. Names are unique per department.
func (s *DepartmentService) CreateSection(ctx context.Context, section *models.Section) error {
	err := s.store.InsertSection(ctx, section)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
			fmt.Sprintf("Section %s already exists in this department", section.Name))
	}
	return err
}

// GetSections lists the sections of one department.
func (s *DepartmentService) GetSections(ctx context.Context, departmentID int64) ([]*models.Section, error) {
	return s.store.ListSections(ctx, departmentID)
}
