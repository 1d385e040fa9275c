package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
)

func TestEnsureOfferingIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewOfferingService(store)
	ctx := context.Background()

	req := &dto.EnsureOfferingRequest{CourseID: 10, AcademicYearID: 20, Semester: 3}

	first, created, err := svc.EnsureOffering(ctx, req)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.EnsureOffering(ctx, req)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, store.offerings, 1)
}

func TestEnsureOfferingUpdatesOnlySuppliedFields(t *testing.T) {
	store := newMemStore()
	svc := NewOfferingService(store)
	ctx := context.Background()

	teacher := int64(7)
	_, _, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3, TeacherID: &teacher,
	})
	require.NoError(t, err)

	// A second call without a teacher must not clear the stored one.
	offering, created, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.NotNil(t, offering.TeacherID)
	require.Equal(t, teacher, *offering.TeacherID)

	// Supplying a different teacher replaces it.
	other := int64(8)
	offering, _, err = svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3, TeacherID: &other,
	})
	require.NoError(t, err)
	require.Equal(t, other, *offering.TeacherID)
}

func TestEnsureOfferingWiresSectionOntoSectionlessRow(t *testing.T) {
	store := newMemStore()
	svc := NewOfferingService(store)
	ctx := context.Background()

	_, _, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3,
	})
	require.NoError(t, err)

	section := int64(5)
	offering, created, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3, SectionID: &section,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Len(t, store.offerings, 1)
	require.Equal(t, section, *offering.SectionID)
}

func TestEnsureOfferingDistinctSections(t *testing.T) {
	store := newMemStore()
	svc := NewOfferingService(store)
	ctx := context.Background()

	a, b := int64(5), int64(6)
	_, created, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3, SectionID: &a,
	})
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3, SectionID: &b,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, store.offerings, 2)
}

func TestEnsureOfferingConvergesOnUniqueViolation(t *testing.T) {
	store := newMemStore()
	svc := NewOfferingService(store)
	ctx := context.Background()

	// Simulate losing a creation race: the row appears between the lookup
	// and the insert. racingStore hides the offering from the first lookup.
	racing := &racingStore{memStore: store}
	racingSvc := NewOfferingService(racing)

	winner, _, err := svc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3,
	})
	require.NoError(t, err)

	offering, created, err := racingSvc.EnsureOffering(ctx, &dto.EnsureOfferingRequest{
		CourseID: 10, AcademicYearID: 20, Semester: 3,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, winner.ID, offering.ID)
}

// racingStore makes the first FindOffering miss, so the insert collides and
// the unique-violation convergence path runs.
type racingStore struct {
	*memStore
	misses int
}

func (r *racingStore) FindOffering(ctx context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (*models.CourseOffering, error) {
	if r.misses == 0 {
		r.misses++
		return nil, nil
	}
	return r.memStore.FindOffering(ctx, courseID, academicYearID, semester, sectionID)
}
