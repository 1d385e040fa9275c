package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
)

// LookupStore answers natural-key lookups. Implementations return (0, nil)
// when no row matches; a non-nil error always means the lookup itself failed.
type LookupStore interface {
	CollegeIDByCode(ctx context.Context, code string) (int64, error)
	DepartmentIDByCode(ctx context.Context, collegeID int64, code string) (int64, error)
	SectionIDByName(ctx context.Context, departmentID int64, name string) (int64, error)
	CourseIDByCode(ctx context.Context, collegeID int64, code string) (int64, error)
	CourseIDByCodeInDepartment(ctx context.Context, departmentID int64, code string) (int64, error)
	TeacherIDByCode(ctx context.Context, collegeID int64, code string) (int64, error)
	StudentIDByUSN(ctx context.Context, usn string) (int64, error)
	UserIDByUsername(ctx context.Context, username string) (int64, error)
	AcademicYearIDByName(ctx context.Context, collegeID int64, name string) (int64, error)
	ActiveAcademicYearID(ctx context.Context, collegeID int64) (int64, error)
	OfferingIDByTuple(ctx context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (int64, error)
	SessionIDByOfferingDate(ctx context.Context, offeringID int64, heldOn string) (int64, error)
}

// Resolver turns natural keys (college codes, USNs, teacher codes, ...) into
// surrogate ids, always searching inside the correct parent scope. Every
// failed resolution comes back as a *apperrors.ScopeError naming the key and
// the scope it was searched in, which the importer surfaces verbatim as a
// row diagnostic.
type Resolver struct {
	store LookupStore
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store LookupStore) *Resolver {
	return &Resolver{store: store}
}

// College resolves a college by its globally unique code.
func (r *Resolver) College(ctx context.Context, code string) (int64, error) {
	id, err := r.store.CollegeIDByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("College", code, "")
	}
	return id, nil
}

// Department resolves a department code inside one college. collegeCode is
// only used for the diagnostic message.
func (r *Resolver) Department(ctx context.Context, collegeID int64, collegeCode, code string) (int64, error) {
	id, err := r.store.DepartmentIDByCode(ctx, collegeID, code)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("Department", code, fmt.Sprintf("college %s", collegeCode))
	}
	return id, nil
}

// Section resolves a section name inside one department.
func (r *Resolver) Section(ctx context.Context, departmentID int64, departmentCode, name string) (int64, error) {
	id, err := r.store.SectionIDByName(ctx, departmentID, name)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("Section", name, fmt.Sprintf("department %s", departmentCode))
	}
	return id, nil
}

// Course resolves a course code. When departmentID is non-nil the search is
// scoped to that department, otherwise the code is college-unique.
func (r *Resolver) Course(ctx context.Context, collegeID int64, collegeCode string, departmentID *int64, departmentCode, code string) (int64, error) {
	var (
		id  int64
		err error
	)
	if departmentID != nil {
		id, err = r.store.CourseIDByCodeInDepartment(ctx, *departmentID, code)
	} else {
		id, err = r.store.CourseIDByCode(ctx, collegeID, code)
	}
	if err != nil {
		return 0, err
	}
	if id == 0 {
		scope := fmt.Sprintf("college %s", collegeCode)
		if departmentID != nil {
			scope = fmt.Sprintf("department %s", departmentCode)
		}
		return 0, apperrors.NewScopeError("Course", code, scope)
	}
	return id, nil
}

// Teacher resolves a teacher by the college-unique teacher code.
func (r *Resolver) Teacher(ctx context.Context, collegeID int64, collegeCode, code string) (int64, error) {
	id, err := r.store.TeacherIDByCode(ctx, collegeID, code)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("Teacher", code, fmt.Sprintf("college %s", collegeCode))
	}
	return id, nil
}

// Student resolves a student by USN. USNs embed their college code, so the
// lookup is global.
func (r *Resolver) Student(ctx context.Context, usn string) (int64, error) {
	id, err := r.store.StudentIDByUSN(ctx, usn)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("Student", usn, "")
	}
	return id, nil
}

// AcademicYear resolves an academic-year name inside one college.
func (r *Resolver) AcademicYear(ctx context.Context, collegeID int64, collegeCode, name string) (int64, error) {
	id, err := r.store.AcademicYearIDByName(ctx, collegeID, name)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.NewScopeError("Academic year", name, fmt.Sprintf("college %s", collegeCode))
	}
	return id, nil
}
