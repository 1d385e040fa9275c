package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
)

// fixture seeds a two-college layout where both colleges own a department
// with the same code, so scoping mistakes show up immediately.
func fixture(t *testing.T) (*memStore, *Resolver) {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()

	abc := &models.College{Code: "ABC", Name: "ABC Institute"}
	xyz := &models.College{Code: "XYZ", Name: "XYZ Institute"}
	require.NoError(t, store.InsertCollege(ctx, abc))
	require.NoError(t, store.InsertCollege(ctx, xyz))

	require.NoError(t, store.InsertDepartment(ctx, &models.Department{CollegeID: abc.ID, Code: "CS", Name: "Computer Science"}))
	require.NoError(t, store.InsertDepartment(ctx, &models.Department{CollegeID: xyz.ID, Code: "CS", Name: "Computing"}))

	return store, NewResolver(store)
}

func TestResolverCollege(t *testing.T) {
	_, resolver := fixture(t)
	ctx := context.Background()

	id, err := resolver.College(ctx, "ABC")
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = resolver.College(ctx, "NONEXISTENT")
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrScopeResolution))
	require.EqualError(t, err, "College NONEXISTENT not found")
}

func TestResolverDepartmentScopedToCollege(t *testing.T) {
	_, resolver := fixture(t)
	ctx := context.Background()

	abcID, err := resolver.College(ctx, "ABC")
	require.NoError(t, err)
	xyzID, err := resolver.College(ctx, "XYZ")
	require.NoError(t, err)

	// The same department code resolves to different rows per college.
	abcCS, err := resolver.Department(ctx, abcID, "ABC", "CS")
	require.NoError(t, err)
	xyzCS, err := resolver.Department(ctx, xyzID, "XYZ", "CS")
	require.NoError(t, err)
	require.NotEqual(t, abcCS, xyzCS)

	_, err = resolver.Department(ctx, abcID, "ABC", "EE")
	require.Error(t, err)
	require.EqualError(t, err, "Department EE not found in college ABC")
}

func TestResolverCourseScope(t *testing.T) {
	store, resolver := fixture(t)
	ctx := context.Background()

	abcID, err := resolver.College(ctx, "ABC")
	require.NoError(t, err)
	csID, err := resolver.Department(ctx, abcID, "ABC", "CS")
	require.NoError(t, err)

	// One departmentless course, one owned by CS.
	require.NoError(t, store.InsertCourse(ctx, &models.Course{
		CollegeID: abcID, Code: "MATH1", Name: "Mathematics I", Type: models.CourseTypeCore,
	}))
	require.NoError(t, store.InsertCourse(ctx, &models.Course{
		CollegeID: abcID, DepartmentID: &csID, Code: "CS101", Name: "Programming", Type: models.CourseTypeCore,
	}))

	mathID, err := resolver.Course(ctx, abcID, "ABC", nil, "", "MATH1")
	require.NoError(t, err)
	require.NotZero(t, mathID)

	csCourseID, err := resolver.Course(ctx, abcID, "ABC", &csID, "CS", "CS101")
	require.NoError(t, err)
	require.NotZero(t, csCourseID)

	_, err = resolver.Course(ctx, abcID, "ABC", &csID, "CS", "MATH1")
	require.Error(t, err)
	require.EqualError(t, err, "Course MATH1 not found in department CS")
}

func TestResolverStudentGlobal(t *testing.T) {
	store, resolver := fixture(t)
	ctx := context.Background()

	abcID, _ := resolver.College(ctx, "ABC")
	csID, _ := resolver.Department(ctx, abcID, "ABC", "CS")
	require.NoError(t, store.InsertStudentProfile(ctx, &models.Student{
		CollegeID: abcID, DepartmentID: csID, USN: "1AB23CS001", CurrentSemester: 3,
	}))

	id, err := resolver.Student(ctx, "1AB23CS001")
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = resolver.Student(ctx, "1AB23CS999")
	require.EqualError(t, err, "Student 1AB23CS999 not found")
}
