package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// EnrollmentStore is the persistence surface of enrollment upserts and
// eligibility checks. Find/Get methods return nil when no row matches.
type EnrollmentStore interface {
	FindEnrollment(ctx context.Context, studentID, offeringID int64) (*models.StudentEnrollment, error)
	InsertEnrollment(ctx context.Context, enrollment *models.StudentEnrollment) error
	UpdateEnrollmentAttempt(ctx context.Context, id int64, attemptNumber int) error
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	RestrictedDepartmentIDs(ctx context.Context, courseID int64) ([]int64, error)
}

// EnrollmentService implements the idempotent enrollment upsert and the
// batch enrollment flow with per-student error isolation.
type EnrollmentService struct {
	store EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(store EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{store: store}
}

// EnsureEnrollment enrolls a student into an offering if not already
// enrolled. An existing enrollment is returned untouched, AttemptNumber
// included; only an explicit retake mutates it.
func (s *EnrollmentService) EnsureEnrollment(ctx context.Context, studentID, offeringID int64) (*models.StudentEnrollment, bool, error) {
	existing, err := s.store.FindEnrollment(ctx, studentID, offeringID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	offering, err := s.store.GetOfferingByID(ctx, offeringID)
	if err != nil {
		return nil, false, err
	}
	if offering == nil {
		return nil, false, apperrors.NewResourceNotFoundError("Course offering not found")
	}

	enrollment := &models.StudentEnrollment{
		StudentID:      studentID,
		OfferingID:     offeringID,
		AcademicYearID: offering.AcademicYearID,
		AttemptNumber:  1,
	}
	if err := s.store.InsertEnrollment(ctx, enrollment); err != nil {
		if dberrors.IsUniqueViolation(err) {
			winner, ferr := s.store.FindEnrollment(ctx, studentID, offeringID)
			if ferr != nil {
				return nil, false, ferr
			}
			if winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}
	return enrollment, true, nil
}

// RecordRetake bumps the attempt number of an existing enrollment. This is
// the only path that mutates AttemptNumber.
func (s *EnrollmentService) RecordRetake(ctx context.Context, studentID, offeringID int64) (*models.StudentEnrollment, error) {
	enrollment, err := s.store.FindEnrollment(ctx, studentID, offeringID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apperrors.NewResourceNotFoundError("Enrollment not found")
	}
	enrollment.AttemptNumber++
	if err := s.store.UpdateEnrollmentAttempt(ctx, enrollment.ID, enrollment.AttemptNumber); err != nil {
		return nil, err
	}
	logger.Info().
		Int64("studentId", studentID).
		Int64("offeringId", offeringID).
		Int("attempt", enrollment.AttemptNumber).
		Msg("Retake recorded")
	return enrollment, nil
}

// EnrollBatch enrolls many students into one offering. Students are
// processed independently: an ineligible or unknown student yields an error
// outcome for that student and never blocks the rest. Duplicate ids within
// the batch are reported as errors rather than silently collapsed.
func (s *EnrollmentService) EnrollBatch(ctx context.Context, offeringID int64, studentIDs []int64) (*dto.EnrollBatchResult, error) {
	offering, err := s.store.GetOfferingByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, apperrors.NewResourceNotFoundError("Course offering not found")
	}
	course, err := s.store.GetCourseByID(ctx, offering.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.NewResourceNotFoundError("Course not found")
	}
	restricted, err := s.store.RestrictedDepartmentIDs(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	result := &dto.EnrollBatchResult{OfferingID: offeringID}
	seen := make(map[int64]bool, len(studentIDs))
	for _, studentID := range studentIDs {
		outcome := dto.EnrollmentOutcome{StudentID: studentID}
		switch {
		case seen[studentID]:
			outcome.Status = dto.EnrollStatusError
			outcome.Message = "duplicate student id in batch"
		default:
			seen[studentID] = true
			outcome = s.enrollOne(ctx, offering, course, restricted, studentID)
		}
		switch outcome.Status {
		case dto.EnrollStatusEnrolled:
			result.Enrolled++
		case dto.EnrollStatusAlreadyEnrolled:
			result.AlreadyEnrolled++
		default:
			result.Errors++
		}
		result.Results = append(result.Results, outcome)
	}

	logger.Info().
		Int64("offeringId", offeringID).
		Int("enrolled", result.Enrolled).
		Int("alreadyEnrolled", result.AlreadyEnrolled).
		Int("errors", result.Errors).
		Msg("Batch enrollment finished")
	return result, nil
}

func (s *EnrollmentService) enrollOne(ctx context.Context, offering *models.CourseOffering, course *models.Course, restricted []int64, studentID int64) dto.EnrollmentOutcome {
	outcome := dto.EnrollmentOutcome{StudentID: studentID}

	student, err := s.store.GetStudentByID(ctx, studentID)
	if err != nil {
		outcome.Status = dto.EnrollStatusError
		outcome.Message = err.Error()
		return outcome
	}
	if student == nil {
		outcome.Status = dto.EnrollStatusError
		outcome.Message = fmt.Sprintf("student %d not found", studentID)
		return outcome
	}
	if err := s.checkEligibility(student, course, offering, restricted); err != nil {
		outcome.Status = dto.EnrollStatusError
		outcome.Message = err.Error()
		return outcome
	}

	_, created, err := s.EnsureEnrollment(ctx, studentID, offering.ID)
	if err != nil {
		outcome.Status = dto.EnrollStatusError
		outcome.Message = err.Error()
		return outcome
	}
	if created {
		outcome.Status = dto.EnrollStatusEnrolled
	} else {
		outcome.Status = dto.EnrollStatusAlreadyEnrolled
	}
	return outcome
}

// CheckEligibility reports whether a student may take an offering of the
// given course. Exposed for the pre-enrollment dry-run endpoint.
func (s *EnrollmentService) CheckEligibility(ctx context.Context, studentID, offeringID int64) error {
	student, err := s.store.GetStudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student == nil {
		return apperrors.NewResourceNotFoundError("Student not found")
	}
	offering, err := s.store.GetOfferingByID(ctx, offeringID)
	if err != nil {
		return err
	}
	if offering == nil {
		return apperrors.NewResourceNotFoundError("Course offering not found")
	}
	course, err := s.store.GetCourseByID(ctx, offering.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.NewResourceNotFoundError("Course not found")
	}
	restricted, err := s.store.RestrictedDepartmentIDs(ctx, course.ID)
	if err != nil {
		return err
	}
	return s.checkEligibility(student, course, offering, restricted)
}

// checkEligibility applies the course-type rules against the student's
// current semester and department. Eligibility always uses the student's
// current semester, never a historical one.
func (s *EnrollmentService) checkEligibility(student *models.Student, course *models.Course, offering *models.CourseOffering, restricted []int64) error {
	if offering.Semester != student.CurrentSemester {
		return apperrors.NewValidationError(fmt.Sprintf(
			"student %s is in semester %d, offering is for semester %d",
			student.USN, student.CurrentSemester, offering.Semester))
	}
	switch course.Type {
	case models.CourseTypeCore, models.CourseTypeDepartmentElective:
		if course.DepartmentID != nil && *course.DepartmentID != student.DepartmentID {
			return apperrors.NewValidationError(fmt.Sprintf(
				"course %s belongs to another department", course.Code))
		}
	case models.CourseTypeOpenElective:
		for _, deptID := range restricted {
			if deptID == student.DepartmentID {
				return apperrors.NewValidationError(fmt.Sprintf(
					"students of this department may not take open elective %s", course.Code))
			}
		}
	}
	return nil
}
