package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// memStore is an in-memory stand-in for the pgx store, backing the service
// tests without a database. It mirrors the unique constraints of the real
// schema by returning pgconn unique-violation errors, so the upsert
// convergence paths are exercised too.
type memStore struct {
	seq          int64
	colleges     []*models.College
	departments  []*models.Department
	sections     []*models.Section
	courses      []*models.Course
	years        []*models.AcademicYear
	users        []*models.User
	teachers     []*models.Teacher
	students     []*models.Student
	admins       []*models.Admin
	viewers      []*models.ReportViewer
	offerings    []*models.CourseOffering
	enrollments  []*models.StudentEnrollment
	sessions     []*models.AttendanceSession
	records      []*models.AttendanceRecord
	theory       []*models.TheoryMarks
	lab          []*models.LabMarks
	restrictions map[int64][]int64
}

func newMemStore() *memStore {
	return &memStore{restrictions: map[int64][]int64{}}
}

func (m *memStore) nextID() int64 {
	m.seq++
	return m.seq
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// Lookup methods.

func (m *memStore) CollegeIDByCode(_ context.Context, code string) (int64, error) {
	for _, c := range m.colleges {
		if c.Code == code {
			return c.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) DepartmentIDByCode(_ context.Context, collegeID int64, code string) (int64, error) {
	for _, d := range m.departments {
		if d.CollegeID == collegeID && d.Code == code {
			return d.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) SectionIDByName(_ context.Context, departmentID int64, name string) (int64, error) {
	for _, s := range m.sections {
		if s.DepartmentID == departmentID && s.Name == name {
			return s.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) CourseIDByCode(_ context.Context, collegeID int64, code string) (int64, error) {
	for _, c := range m.courses {
		if c.CollegeID == collegeID && c.Code == code {
			return c.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) CourseIDByCodeInDepartment(_ context.Context, departmentID int64, code string) (int64, error) {
	for _, c := range m.courses {
		if c.DepartmentID != nil && *c.DepartmentID == departmentID && c.Code == code {
			return c.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) TeacherIDByCode(_ context.Context, collegeID int64, code string) (int64, error) {
	for _, t := range m.teachers {
		if t.CollegeID == collegeID && t.Code == code {
			return t.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) StudentIDByUSN(_ context.Context, usn string) (int64, error) {
	for _, s := range m.students {
		if s.USN == usn {
			return s.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) UserIDByUsername(_ context.Context, username string) (int64, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) AcademicYearIDByName(_ context.Context, collegeID int64, name string) (int64, error) {
	for _, y := range m.years {
		if y.CollegeID == collegeID && y.Name == name {
			return y.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) ActiveAcademicYearID(_ context.Context, collegeID int64) (int64, error) {
	for _, y := range m.years {
		if y.CollegeID == collegeID && y.IsActive {
			return y.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) OfferingIDByTuple(_ context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (int64, error) {
	var fallback int64
	for _, o := range m.offerings {
		if o.CourseID != courseID || o.AcademicYearID != academicYearID || o.Semester != semester {
			continue
		}
		if sectionID != nil {
			if o.SectionID != nil && *o.SectionID == *sectionID {
				return o.ID, nil
			}
			continue
		}
		if o.SectionID == nil {
			return o.ID, nil
		}
		if fallback == 0 {
			fallback = o.ID
		}
	}
	return fallback, nil
}

func (m *memStore) SessionIDByOfferingDate(_ context.Context, offeringID int64, heldOn string) (int64, error) {
	for _, s := range m.sessions {
		if s.OfferingID == offeringID && s.HeldOn.Format("2006-01-02") == heldOn {
			return s.ID, nil
		}
	}
	return 0, nil
}

func (m *memStore) EnrollmentIDFor(_ context.Context, studentID, offeringID int64) (int64, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.OfferingID == offeringID {
			return e.ID, nil
		}
	}
	return 0, nil
}

// Insert methods.

func (m *memStore) InsertCollege(ctx context.Context, college *models.College) error {
	if id, _ := m.CollegeIDByCode(ctx, college.Code); id != 0 {
		return uniqueViolation()
	}
	college.ID = m.nextID()
	m.colleges = append(m.colleges, college)
	return nil
}

func (m *memStore) InsertDepartment(ctx context.Context, department *models.Department) error {
	if id, _ := m.DepartmentIDByCode(ctx, department.CollegeID, department.Code); id != 0 {
		return uniqueViolation()
	}
	department.ID = m.nextID()
	m.departments = append(m.departments, department)
	return nil
}

func (m *memStore) InsertSection(ctx context.Context, section *models.Section) error {
	if id, _ := m.SectionIDByName(ctx, section.DepartmentID, section.Name); id != 0 {
		return uniqueViolation()
	}
	section.ID = m.nextID()
	m.sections = append(m.sections, section)
	return nil
}

func (m *memStore) InsertCourse(ctx context.Context, course *models.Course) error {
	if id, _ := m.CourseIDByCode(ctx, course.CollegeID, course.Code); id != 0 {
		return uniqueViolation()
	}
	course.ID = m.nextID()
	m.courses = append(m.courses, course)
	if len(course.RestrictedDepartmentIDs) > 0 {
		m.restrictions[course.ID] = course.RestrictedDepartmentIDs
	}
	return nil
}

func (m *memStore) InsertAcademicYear(ctx context.Context, year *models.AcademicYear) error {
	if id, _ := m.AcademicYearIDByName(ctx, year.CollegeID, year.Name); id != 0 {
		return uniqueViolation()
	}
	year.ID = m.nextID()
	m.years = append(m.years, year)
	return nil
}

func (m *memStore) ActivateAcademicYear(_ context.Context, collegeID, yearID int64) error {
	for _, y := range m.years {
		if y.CollegeID == collegeID {
			y.IsActive = y.ID == yearID
		}
	}
	return nil
}

func (m *memStore) InsertUser(ctx context.Context, user *models.User) error {
	if id, _ := m.UserIDByUsername(ctx, user.Username); id != 0 {
		return uniqueViolation()
	}
	user.ID = m.nextID()
	m.users = append(m.users, user)
	return nil
}

func (m *memStore) InsertAdminProfile(_ context.Context, admin *models.Admin) error {
	admin.ID = m.nextID()
	m.admins = append(m.admins, admin)
	return nil
}

func (m *memStore) InsertReportViewerProfile(_ context.Context, viewer *models.ReportViewer) error {
	viewer.ID = m.nextID()
	m.viewers = append(m.viewers, viewer)
	return nil
}

func (m *memStore) InsertTeacherProfile(ctx context.Context, teacher *models.Teacher) error {
	if id, _ := m.TeacherIDByCode(ctx, teacher.CollegeID, teacher.Code); id != 0 {
		return uniqueViolation()
	}
	teacher.ID = m.nextID()
	m.teachers = append(m.teachers, teacher)
	return nil
}

func (m *memStore) InsertStudentProfile(ctx context.Context, student *models.Student) error {
	if id, _ := m.StudentIDByUSN(ctx, student.USN); id != 0 {
		return uniqueViolation()
	}
	student.ID = m.nextID()
	m.students = append(m.students, student)
	return nil
}

func (m *memStore) InsertAttendanceSession(_ context.Context, session *models.AttendanceSession) error {
	session.ID = m.nextID()
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *memStore) InsertAttendanceRecord(_ context.Context, record *models.AttendanceRecord) error {
	for _, r := range m.records {
		if r.SessionID == record.SessionID && r.StudentID == record.StudentID {
			return uniqueViolation()
		}
	}
	record.ID = m.nextID()
	m.records = append(m.records, record)
	return nil
}

func (m *memStore) InsertTheoryMarks(_ context.Context, marks *models.TheoryMarks) error {
	for _, t := range m.theory {
		if t.EnrollmentID == marks.EnrollmentID && t.Exam == marks.Exam {
			return uniqueViolation()
		}
	}
	marks.ID = m.nextID()
	m.theory = append(m.theory, marks)
	return nil
}

func (m *memStore) InsertLabMarks(_ context.Context, marks *models.LabMarks) error {
	for _, l := range m.lab {
		if l.EnrollmentID == marks.EnrollmentID && l.Exam == marks.Exam {
			return uniqueViolation()
		}
	}
	marks.ID = m.nextID()
	m.lab = append(m.lab, marks)
	return nil
}

// Offering store methods.

func (m *memStore) FindOffering(_ context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (*models.CourseOffering, error) {
	for _, o := range m.offerings {
		if o.CourseID != courseID || o.AcademicYearID != academicYearID || o.Semester != semester {
			continue
		}
		if sectionID == nil && o.SectionID == nil {
			return o, nil
		}
		if sectionID != nil && o.SectionID != nil && *sectionID == *o.SectionID {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertOffering(ctx context.Context, offering *models.CourseOffering) error {
	if existing, _ := m.FindOffering(ctx, offering.CourseID, offering.AcademicYearID, offering.Semester, offering.SectionID); existing != nil {
		return uniqueViolation()
	}
	offering.ID = m.nextID()
	m.offerings = append(m.offerings, offering)
	return nil
}

func (m *memStore) UpdateOfferingAssignments(_ context.Context, id int64, sectionID, teacherID *int64) error {
	for _, o := range m.offerings {
		if o.ID == id {
			if sectionID != nil {
				o.SectionID = sectionID
			}
			if teacherID != nil {
				o.TeacherID = teacherID
			}
			return nil
		}
	}
	return nil
}

func (m *memStore) GetOfferingByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	for _, o := range m.offerings {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListOfferings(_ context.Context, academicYearID int64) ([]*models.CourseOffering, error) {
	var out []*models.CourseOffering
	for _, o := range m.offerings {
		if o.AcademicYearID == academicYearID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Enrollment store methods.

func (m *memStore) FindEnrollment(_ context.Context, studentID, offeringID int64) (*models.StudentEnrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.OfferingID == offeringID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertEnrollment(ctx context.Context, enrollment *models.StudentEnrollment) error {
	if existing, _ := m.FindEnrollment(ctx, enrollment.StudentID, enrollment.OfferingID); existing != nil {
		return uniqueViolation()
	}
	enrollment.ID = m.nextID()
	m.enrollments = append(m.enrollments, enrollment)
	return nil
}

func (m *memStore) UpdateEnrollmentAttempt(_ context.Context, id int64, attemptNumber int) error {
	for _, e := range m.enrollments {
		if e.ID == id {
			e.AttemptNumber = attemptNumber
		}
	}
	return nil
}

func (m *memStore) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memStore) RestrictedDepartmentIDs(_ context.Context, courseID int64) ([]int64, error) {
	return m.restrictions[courseID], nil
}

// Auth store methods.

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
