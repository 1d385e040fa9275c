package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/repositories"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
)

// CourseService manages courses and their open-elective restrictions.
type CourseService struct {
	store *repositories.Store
}

// NewCourseService creates a new course service.
func NewCourseService(store *repositories.Store) *CourseService {
	return &CourseService{store: store}
}

// Create inserts a course, with its restriction rows when it is an open
// elective. Restrictions on any other course type are rejected.
func (s *CourseService) Create(ctx context.Context, course *models.Course) error {
	if !models.ValidCourseType(course.Type) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid course type %q", course.Type))
	}
	if len(course.RestrictedDepartmentIDs) > 0 && course.Type != models.CourseTypeOpenElective {
		return apperrors.NewValidationError("department restrictions are only valid for open electives")
	}
	err := s.store.InsertCourse(ctx, course)
	if dberrors.IsUniqueViolation(err) {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists,
			fmt.Sprintf("Course with code %s already exists in this college", course.Code))
	}
	return err
}

// GetAll lists the courses of one college.
func (s *CourseService) GetAll(ctx context.Context, collegeID int64) ([]*models.Course, error) {
	return s.store.ListCourses(ctx, collegeID)
}

// GetByID fetches one course with its restriction list populated.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.NewResourceNotFoundError("Course not found")
	}
	return course, nil
}
