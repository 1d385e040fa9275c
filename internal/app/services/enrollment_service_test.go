package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
)

// enrollmentFixture seeds one CS student in semester 3 and a core CS course
// offered that semester.
func enrollmentFixture(t *testing.T) (*memStore, *EnrollmentService, *models.Student, *models.CourseOffering) {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()

	college := &models.College{Code: "ABC", Name: "ABC Institute"}
	require.NoError(t, store.InsertCollege(ctx, college))
	cs := &models.Department{CollegeID: college.ID, Code: "CS", Name: "Computer Science"}
	require.NoError(t, store.InsertDepartment(ctx, cs))

	student := &models.Student{CollegeID: college.ID, DepartmentID: cs.ID, USN: "1AB23CS001", CurrentSemester: 3}
	require.NoError(t, store.InsertStudentProfile(ctx, student))

	course := &models.Course{CollegeID: college.ID, DepartmentID: &cs.ID, Code: "CS101", Name: "Programming", Type: models.CourseTypeCore}
	require.NoError(t, store.InsertCourse(ctx, course))

	year := &models.AcademicYear{CollegeID: college.ID, Name: "2024-25", IsActive: true}
	require.NoError(t, store.InsertAcademicYear(ctx, year))

	offering := &models.CourseOffering{CourseID: course.ID, AcademicYearID: year.ID, Semester: 3}
	require.NoError(t, store.InsertOffering(ctx, offering))

	return store, NewEnrollmentService(store), student, offering
}

func TestEnsureEnrollmentIsIdempotent(t *testing.T) {
	_, svc, student, offering := enrollmentFixture(t)
	ctx := context.Background()

	first, created, err := svc.EnsureEnrollment(ctx, student.ID, offering.ID)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 1, first.AttemptNumber)
	require.Equal(t, offering.AcademicYearID, first.AcademicYearID)

	second, created, err := svc.EnsureEnrollment(ctx, student.ID, offering.ID)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, second.AttemptNumber)
}

func TestEnsureEnrollmentLeavesAttemptUntouched(t *testing.T) {
	_, svc, student, offering := enrollmentFixture(t)
	ctx := context.Background()

	_, _, err := svc.EnsureEnrollment(ctx, student.ID, offering.ID)
	require.NoError(t, err)

	retaken, err := svc.RecordRetake(ctx, student.ID, offering.ID)
	require.NoError(t, err)
	require.Equal(t, 2, retaken.AttemptNumber)

	// A later upsert of the same pair must not reset the attempt count.
	enrollment, created, err := svc.EnsureEnrollment(ctx, student.ID, offering.ID)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 2, enrollment.AttemptNumber)
}

func TestRecordRetakeRequiresEnrollment(t *testing.T) {
	_, svc, student, offering := enrollmentFixture(t)

	_, err := svc.RecordRetake(context.Background(), student.ID, offering.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestEnrollBatchIsolatesStudents(t *testing.T) {
	store, svc, student, offering := enrollmentFixture(t)
	ctx := context.Background()

	// A second student stuck in the wrong semester.
	behind := &models.Student{CollegeID: student.CollegeID, DepartmentID: student.DepartmentID, USN: "1AB23CS002", CurrentSemester: 1}
	require.NoError(t, store.InsertStudentProfile(ctx, behind))

	result, err := svc.EnrollBatch(ctx, offering.ID, []int64{student.ID, student.ID, behind.ID, 9999})
	require.NoError(t, err)
	require.Equal(t, 1, result.Enrolled)
	require.Equal(t, 0, result.AlreadyEnrolled)
	require.Equal(t, 3, result.Errors)
	require.Len(t, result.Results, 4)

	require.Equal(t, dto.EnrollStatusEnrolled, result.Results[0].Status)
	require.Equal(t, dto.EnrollStatusError, result.Results[1].Status)
	require.Contains(t, result.Results[1].Message, "duplicate")
	require.Contains(t, result.Results[2].Message, "semester")
	require.Contains(t, result.Results[3].Message, "not found")

	// Re-running the batch reports the survivor as already enrolled.
	result, err = svc.EnrollBatch(ctx, offering.ID, []int64{student.ID})
	require.NoError(t, err)
	require.Equal(t, 0, result.Enrolled)
	require.Equal(t, 1, result.AlreadyEnrolled)
}

func TestEligibilityDepartmentRules(t *testing.T) {
	store, svc, student, offering := enrollmentFixture(t)
	ctx := context.Background()

	ee := &models.Department{CollegeID: student.CollegeID, Code: "EE", Name: "Electrical"}
	require.NoError(t, store.InsertDepartment(ctx, ee))
	outsider := &models.Student{CollegeID: student.CollegeID, DepartmentID: ee.ID, USN: "1AB23EE001", CurrentSemester: 3}
	require.NoError(t, store.InsertStudentProfile(ctx, outsider))

	// A core course of CS is closed to EE students.
	err := svc.CheckEligibility(ctx, outsider.ID, offering.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "another department")

	// A departmentless core course is open to everyone.
	shared := &models.Course{CollegeID: student.CollegeID, Code: "MATH1", Name: "Mathematics I", Type: models.CourseTypeCore}
	require.NoError(t, store.InsertCourse(ctx, shared))
	sharedOffering := &models.CourseOffering{CourseID: shared.ID, AcademicYearID: offering.AcademicYearID, Semester: 3}
	require.NoError(t, store.InsertOffering(ctx, sharedOffering))
	require.NoError(t, svc.CheckEligibility(ctx, outsider.ID, sharedOffering.ID))
	require.NoError(t, svc.CheckEligibility(ctx, student.ID, sharedOffering.ID))
}

func TestEligibilityOpenElectiveRestriction(t *testing.T) {
	store, svc, student, offering := enrollmentFixture(t)
	ctx := context.Background()

	ee := &models.Department{CollegeID: student.CollegeID, Code: "EE", Name: "Electrical"}
	require.NoError(t, store.InsertDepartment(ctx, ee))
	outsider := &models.Student{CollegeID: student.CollegeID, DepartmentID: ee.ID, USN: "1AB23EE001", CurrentSemester: 3}
	require.NoError(t, store.InsertStudentProfile(ctx, outsider))

	// An open elective barred for the CS department.
	elective := &models.Course{
		CollegeID: student.CollegeID, Code: "OE201", Name: "Photography",
		Type: models.CourseTypeOpenElective, RestrictedDepartmentIDs: []int64{student.DepartmentID},
	}
	require.NoError(t, store.InsertCourse(ctx, elective))
	electiveOffering := &models.CourseOffering{CourseID: elective.ID, AcademicYearID: offering.AcademicYearID, Semester: 3}
	require.NoError(t, store.InsertOffering(ctx, electiveOffering))

	err := svc.CheckEligibility(ctx, student.ID, electiveOffering.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "may not take open elective")

	require.NoError(t, svc.CheckEligibility(ctx, outsider.ID, electiveOffering.ID))
}
