package repositories

import (
	"context"
)

// Natural-key lookups backing the resolver. All of them return (0, nil)
// when no row matches.

// CollegeIDByCode resolves a college by its globally unique code.
func (s *Store) CollegeIDByCode(ctx context.Context, code string) (int64, error) {
	return s.lookupID(ctx, `SELECT id FROM colleges WHERE code = $1`, code)
}

// DepartmentIDByCode resolves a department code within one college.
func (s *Store) DepartmentIDByCode(ctx context.Context, collegeID int64, code string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM departments WHERE college_id = $1 AND code = $2`, collegeID, code)
}

// SectionIDByName resolves a section name within one department.
func (s *Store) SectionIDByName(ctx context.Context, departmentID int64, name string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM sections WHERE department_id = $1 AND name = $2`, departmentID, name)
}

// CourseIDByCode resolves a course code within one college.
func (s *Store) CourseIDByCode(ctx context.Context, collegeID int64, code string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM courses WHERE college_id = $1 AND code = $2`, collegeID, code)
}

// CourseIDByCodeInDepartment resolves a course code within one department.
func (s *Store) CourseIDByCodeInDepartment(ctx context.Context, departmentID int64, code string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM courses WHERE department_id = $1 AND code = $2`, departmentID, code)
}

// TeacherIDByCode resolves a teacher code within one college.
func (s *Store) TeacherIDByCode(ctx context.Context, collegeID int64, code string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM teachers WHERE college_id = $1 AND code = $2`, collegeID, code)
}

// StudentIDByUSN resolves a student by USN. USNs embed the college code, so
// they are globally unique.
func (s *Store) StudentIDByUSN(ctx context.Context, usn string) (int64, error) {
	return s.lookupID(ctx, `SELECT id FROM students WHERE usn = $1`, usn)
}

// UserIDByUsername resolves a user by username.
func (s *Store) UserIDByUsername(ctx context.Context, username string) (int64, error) {
	return s.lookupID(ctx, `SELECT id FROM users WHERE username = $1`, username)
}

// AcademicYearIDByName resolves an academic-year name within one college.
func (s *Store) AcademicYearIDByName(ctx context.Context, collegeID int64, name string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM academic_years WHERE college_id = $1 AND name = $2`, collegeID, name)
}

// ActiveAcademicYearID resolves the college's single active year.
func (s *Store) ActiveAcademicYearID(ctx context.Context, collegeID int64) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM academic_years WHERE college_id = $1 AND is_active`, collegeID)
}

// OfferingIDByTuple resolves an offering from its uniqueness tuple. A nil
// sectionID matches any offering of the tuple, section-less rows first, so
// import rows that omit the section still find their offering.
func (s *Store) OfferingIDByTuple(ctx context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (int64, error) {
	if sectionID != nil {
		return s.lookupID(ctx,
			`SELECT id FROM course_offerings
			 WHERE course_id = $1 AND academic_year_id = $2 AND semester = $3 AND section_id = $4`,
			courseID, academicYearID, semester, *sectionID)
	}
	return s.lookupID(ctx,
		`SELECT id FROM course_offerings
		 WHERE course_id = $1 AND academic_year_id = $2 AND semester = $3
		 ORDER BY section_id NULLS FIRST LIMIT 1`,
		courseID, academicYearID, semester)
}

// SessionIDByOfferingDate resolves an attendance session by offering and
// date (YYYY-MM-DD).
func (s *Store) SessionIDByOfferingDate(ctx context.Context, offeringID int64, heldOn string) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM attendance_sessions
		 WHERE offering_id = $1 AND held_on = $2::date
		 ORDER BY id LIMIT 1`,
		offeringID, heldOn)
}

// EnrollmentIDFor resolves the enrollment tying a student to an offering.
func (s *Store) EnrollmentIDFor(ctx context.Context, studentID, offeringID int64) (int64, error) {
	return s.lookupID(ctx,
		`SELECT id FROM student_enrollments WHERE student_id = $1 AND offering_id = $2`,
		studentID, offeringID)
}
