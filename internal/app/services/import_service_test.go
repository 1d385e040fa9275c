package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
)

func newImporter(store *memStore) *ImportService {
	resolver := NewResolver(store)
	return NewImportService(store, resolver, NewOfferingService(store), NewEnrollmentService(store))
}

// seedAcademicBase populates one college with a department, section, course
// and academic year, returning the store ready for transactional-data
// imports.
func seedAcademicBase(t *testing.T) *memStore {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	importer := newImporter(store)

	batches := []struct {
		table string
		rows  []map[string]interface{}
	}{
		{"colleges", []map[string]interface{}{{"code": "ABC", "name": "ABC Institute"}}},
		{"departments", []map[string]interface{}{{"college_code": "ABC", "code": "CS", "name": "Computer Science"}}},
		{"sections", []map[string]interface{}{{"college_code": "ABC", "department_code": "CS", "name": "A"}}},
		{"academic_years", []map[string]interface{}{{"college_code": "ABC", "name": "2024-25", "start_date": "2024-08-01", "is_active": true}}},
		{"courses", []map[string]interface{}{{"college_code": "ABC", "department_code": "CS", "code": "CS101", "name": "Programming", "type": "core"}}},
		{"teachers", []map[string]interface{}{{"college_code": "ABC", "department_code": "CS", "code": "T01", "name": "Asha Rao"}}},
		{"students", []map[string]interface{}{
			{"college_code": "ABC", "department_code": "CS", "usn": "1AB23CS001", "name": "Student One", "section": "A", "semester": 3},
			{"college_code": "ABC", "department_code": "CS", "usn": "1AB23CS002", "name": "Student Two", "semester": 3},
		}},
	}
	for _, batch := range batches {
		result, err := importer.ImportTable(ctx, batch.table, batch.rows)
		require.NoError(t, err)
		require.Empty(t, result.Errors, "seeding %s", batch.table)
	}
	return store
}

func TestImportBatchIsRowIsolated(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importer := newImporter(store)

	result, err := importer.ImportTable(ctx, "colleges", []map[string]interface{}{
		{"code": "ABC", "name": "ABC Institute"},
		{"code": "BAD"}, // missing name
		{"code": "XYZ", "name": "XYZ Institute"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.BatchID)
	require.Equal(t, 2, result.RecordsProcessed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "row 2")

	// The failing row did not stop the later one.
	id, err := store.CollegeIDByCode(ctx, "XYZ")
	require.NoError(t, err)
	require.NotZero(t, id)
}

func TestImportUnresolvableParentFailsRow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importer := newImporter(store)

	_, err := importer.ImportTable(ctx, "colleges", []map[string]interface{}{
		{"code": "ABC", "name": "ABC Institute"},
	})
	require.NoError(t, err)

	result, err := importer.ImportTable(ctx, "departments", []map[string]interface{}{
		{"college_code": "NONEXISTENT", "code": "CS", "name": "Computer Science"},
		{"college_code": "ABC", "code": "CS", "name": "Computer Science"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.RecordsProcessed)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "College NONEXISTENT not found")
}

func TestImportUnknownTable(t *testing.T) {
	importer := newImporter(newMemStore())
	_, err := importer.ImportTable(context.Background(), "invoices", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrUnknownTable)
}

func TestImportStudentsCreatesUsers(t *testing.T) {
	store := seedAcademicBase(t)
	ctx := context.Background()

	// Both students got login accounts with the USN as the username.
	userID, err := store.UserIDByUsername(ctx, "1AB23CS001")
	require.NoError(t, err)
	require.NotZero(t, userID)

	// The first student's section resolved inside the CS department.
	studentID, err := store.StudentIDByUSN(ctx, "1AB23CS001")
	require.NoError(t, err)
	student, err := store.GetStudentByID(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, student.SectionID)
	require.Equal(t, 3, student.CurrentSemester)
}

func TestImportStudentUnknownSectionFailsRow(t *testing.T) {
	store := seedAcademicBase(t)
	importer := newImporter(store)

	result, err := importer.ImportTable(context.Background(), "students", []map[string]interface{}{
		{"college_code": "ABC", "department_code": "CS", "usn": "1AB23CS010", "name": "Ghost", "section": "Z"},
	})
	require.NoError(t, err)
	require.Zero(t, result.RecordsProcessed)
	require.Contains(t, result.Errors[0], "Section Z not found in department CS")
}

func TestImportOfferingTeacherIsAuxiliary(t *testing.T) {
	store := seedAcademicBase(t)
	importer := newImporter(store)
	ctx := context.Background()

	// Absent teacher leaves the offering unassigned; an unresolvable code
	// fails the row.
	result, err := importer.ImportTable(ctx, "course_offerings", []map[string]interface{}{
		{"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 3},
		{"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 5, "teacher_code": "T99"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.RecordsProcessed)
	require.Contains(t, result.Errors[0], "Teacher T99 not found in college ABC")

	offeringID, err := store.OfferingIDByTuple(ctx, mustCourse(t, store, "CS101"), mustYear(t, store, "2024-25"), 3, nil)
	require.NoError(t, err)
	offering, err := store.GetOfferingByID(ctx, offeringID)
	require.NoError(t, err)
	require.Nil(t, offering.TeacherID)
}

func TestImportOfferingReimportConverges(t *testing.T) {
	store := seedAcademicBase(t)
	importer := newImporter(store)
	ctx := context.Background()

	row := map[string]interface{}{
		"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 3,
	}
	for i := 0; i < 2; i++ {
		result, err := importer.ImportTable(ctx, "course_offerings", []map[string]interface{}{row})
		require.NoError(t, err)
		require.Empty(t, result.Errors)
		require.Equal(t, 1, result.RecordsProcessed)
	}
	require.Len(t, store.offerings, 1)

	// A reimport carrying the teacher assigns it without duplicating.
	row["teacher_code"] = "T01"
	_, err := importer.ImportTable(ctx, "course_offerings", []map[string]interface{}{row})
	require.NoError(t, err)
	require.Len(t, store.offerings, 1)
	require.NotNil(t, store.offerings[0].TeacherID)
}

func TestImportMarksRequireEnrollment(t *testing.T) {
	store := seedAcademicBase(t)
	importer := newImporter(store)
	ctx := context.Background()

	_, err := importer.ImportTable(ctx, "course_offerings", []map[string]interface{}{
		{"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 3},
	})
	require.NoError(t, err)

	marksRow := map[string]interface{}{
		"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 3,
		"usn": "1AB23CS001", "exam": "IA1", "marks": 18, "max_marks": 20,
	}
	result, err := importer.ImportTable(ctx, "theory_marks", []map[string]interface{}{marksRow})
	require.NoError(t, err)
	require.Contains(t, result.Errors[0], "not enrolled")

	_, err = importer.ImportTable(ctx, "student_enrollments", []map[string]interface{}{
		{"college_code": "ABC", "course_code": "CS101", "academic_year": "2024-25", "semester": 3, "usn": "1AB23CS001"},
	})
	require.NoError(t, err)

	result, err = importer.ImportTable(ctx, "theory_marks", []map[string]interface{}{marksRow})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, store.theory, 1)
}

func TestImportOrderedTables(t *testing.T) {
	importer := newImporter(newMemStore())
	tables := importer.OrderedTables()

	idx := map[string]int{}
	for i, table := range tables {
		idx[table] = i
	}
	require.Equal(t, "colleges", tables[0])
	require.Less(t, idx["departments"], idx["sections"])
	require.Less(t, idx["courses"], idx["course_offerings"])
	require.Less(t, idx["course_offerings"], idx["student_enrollments"])
	require.Less(t, idx["student_enrollments"], idx["theory_marks"])
}

func mustCourse(t *testing.T, store *memStore, code string) int64 {
	t.Helper()
	for _, c := range store.courses {
		if c.Code == code {
			return c.ID
		}
	}
	t.Fatalf("course %s not seeded", code)
	return 0
}

func mustYear(t *testing.T, store *memStore, name string) int64 {
	t.Helper()
	for _, y := range store.years {
		if y.Name == name {
			return y.ID
		}
	}
	t.Fatalf("academic year %s not seeded", name)
	return 0
}
