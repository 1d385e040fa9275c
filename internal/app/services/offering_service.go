package services

import (
	"context"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// OfferingStore is the persistence surface of the offering upsert.
// FindOffering returns nil (not an error) when no row matches the tuple.
type OfferingStore interface {
	FindOffering(ctx context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (*models.CourseOffering, error)
	InsertOffering(ctx context.Context, offering *models.CourseOffering) error
	UpdateOfferingAssignments(ctx context.Context, id int64, sectionID, teacherID *int64) error
	GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	ListOfferings(ctx context.Context, academicYearID int64) ([]*models.CourseOffering, error)
}

// OfferingService implements the idempotent offering upsert: creating the
// same (course, academic year, semester[, section]) tuple twice converges on
// one row instead of failing or duplicating.
type OfferingService struct {
	store OfferingStore
}

// NewOfferingService creates a new offering service.
func NewOfferingService(store OfferingStore) *OfferingService {
	return &OfferingService{store: store}
}

// EnsureOffering finds or creates the offering for the request tuple. When
// the offering already exists, only the fields the caller explicitly
// supplied (section and/or teacher) are updated; omitted fields keep their
// stored values.
func (s *OfferingService) EnsureOffering(ctx context.Context, req *dto.EnsureOfferingRequest) (*models.CourseOffering, bool, error) {
	existing, err := s.lookup(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return s.applyAssignments(ctx, existing, req)
	}

	offering := &models.CourseOffering{
		CourseID:       req.CourseID,
		AcademicYearID: req.AcademicYearID,
		Semester:       req.Semester,
		SectionID:      req.SectionID,
		TeacherID:      req.TeacherID,
	}
	if err := s.store.InsertOffering(ctx, offering); err != nil {
		if dberrors.IsUniqueViolation(err) {
			// Lost a concurrent race for the same tuple; converge on the
			// winner and apply our explicit assignments to it.
			winner, ferr := s.lookup(ctx, req)
			if ferr != nil {
				return nil, false, ferr
			}
			if winner != nil {
				return s.applyAssignments(ctx, winner, req)
			}
		}
		return nil, false, err
	}

	logger.Info().
		Int64("offeringId", offering.ID).
		Int64("courseId", offering.CourseID).
		Int("semester", offering.Semester).
		Msg("Course offering created")
	return offering, true, nil
}

// lookup finds the offering matching the request tuple. A supplied section
// participates in the tuple; when it matches nothing, the section-less
// offering of the same (course, year, semester) is reused so the section can
// be wired onto it. An omitted section matches the section-less row only.
func (s *OfferingService) lookup(ctx context.Context, req *dto.EnsureOfferingRequest) (*models.CourseOffering, error) {
	found, err := s.store.FindOffering(ctx, req.CourseID, req.AcademicYearID, req.Semester, req.SectionID)
	if err != nil {
		return nil, err
	}
	if found != nil || req.SectionID == nil {
		return found, nil
	}
	return s.store.FindOffering(ctx, req.CourseID, req.AcademicYearID, req.Semester, nil)
}

func (s *OfferingService) applyAssignments(ctx context.Context, offering *models.CourseOffering, req *dto.EnsureOfferingRequest) (*models.CourseOffering, bool, error) {
	if req.SectionID == nil && req.TeacherID == nil {
		return offering, false, nil
	}
	if err := s.store.UpdateOfferingAssignments(ctx, offering.ID, req.SectionID, req.TeacherID); err != nil {
		return nil, false, err
	}
	if req.SectionID != nil {
		offering.SectionID = req.SectionID
	}
	if req.TeacherID != nil {
		offering.TeacherID = req.TeacherID
	}
	return offering, false, nil
}

// GetOffering fetches one offering by id.
func (s *OfferingService) GetOffering(ctx context.Context, id int64) (*models.CourseOffering, error) {
	offering, err := s.store.GetOfferingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, apperrors.NewResourceNotFoundError("Course offering not found")
	}
	return offering, nil
}

// ListOfferings returns every offering of one academic year.
func (s *OfferingService) ListOfferings(ctx context.Context, academicYearID int64) ([]*models.CourseOffering, error) {
	return s.store.ListOfferings(ctx, academicYearID)
}
