package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pskth/attendance-management-system/internal/app/models"
	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/schema"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/dberrors"
	"github.com/pskth/attendance-management-system/internal/pkg/helpers"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// ImportStore is the persistence surface of the bulk importer. It embeds the
// natural-key lookups and adds the insert paths the row handlers need.
type ImportStore interface {
	LookupStore

	InsertCollege(ctx context.Context, college *models.College) error
	InsertDepartment(ctx context.Context, department *models.Department) error
	InsertSection(ctx context.Context, section *models.Section) error
	InsertCourse(ctx context.Context, course *models.Course) error
	InsertAcademicYear(ctx context.Context, year *models.AcademicYear) error
	ActivateAcademicYear(ctx context.Context, collegeID, yearID int64) error
	InsertUser(ctx context.Context, user *models.User) error
	InsertAdminProfile(ctx context.Context, admin *models.Admin) error
	InsertReportViewerProfile(ctx context.Context, viewer *models.ReportViewer) error
	InsertTeacherProfile(ctx context.Context, teacher *models.Teacher) error
	InsertStudentProfile(ctx context.Context, student *models.Student) error
	InsertAttendanceSession(ctx context.Context, session *models.AttendanceSession) error
	InsertAttendanceRecord(ctx context.Context, record *models.AttendanceRecord) error
	InsertTheoryMarks(ctx context.Context, marks *models.TheoryMarks) error
	InsertLabMarks(ctx context.Context, marks *models.LabMarks) error
	EnrollmentIDFor(ctx context.Context, studentID, offeringID int64) (int64, error)
}

// ImportService is the bulk importer. Rows reference their parents by
// natural key (college codes, USNs, teacher codes) and are written in
// per-row isolation: a failed row produces one diagnostic and never aborts
// the batch.
type ImportService struct {
	store       ImportStore
	resolver    *Resolver
	offerings   *OfferingService
	enrollments *EnrollmentService
}

// NewImportService creates a new import service.
func NewImportService(store ImportStore, resolver *Resolver, offerings *OfferingService, enrollments *EnrollmentService) *ImportService {
	return &ImportService{
		store:       store,
		resolver:    resolver,
		offerings:   offerings,
		enrollments: enrollments,
	}
}

type rowHandler func(ctx context.Context, row map[string]interface{}) error

func (s *ImportService) handlers() map[string]rowHandler {
	return map[string]rowHandler{
		"colleges":            s.importCollege,
		"departments":         s.importDepartment,
		"sections":            s.importSection,
		"courses":             s.importCourse,
		"academic_years":      s.importAcademicYear,
		"users":               s.importUser,
		"teachers":            s.importTeacher,
		"students":            s.importStudent,
		"course_offerings":    s.importOffering,
		"student_enrollments": s.importEnrollment,
		"attendance_sessions": s.importSession,
		"attendance_records":  s.importRecord,
		"theory_marks":        s.importTheoryMarks,
		"lab_marks":           s.importLabMarks,
	}
}

// OrderedTables returns the importable table names in the required
// parent-before-child order, so a caller loading multiple files knows which
// to submit first.
func (s *ImportService) OrderedTables() []string {
	importable := s.handlers()
	var out []string
	for _, t := range schema.ImportOrder() {
		table := schema.Table(t)
		if _, ok := importable[table]; ok {
			out = append(out, table)
		}
	}
	return out
}

// ImportTable writes one batch of rows into the named table. Every row is
// handled independently; the result reports how many rows were written and
// one message per failed row, numbered by the row's 1-based position.
func (s *ImportService) ImportTable(ctx context.Context, table string, rows []map[string]interface{}) (*dto.ImportResult, error) {
	handler, ok := s.handlers()[table]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownTable, fmt.Sprintf("unknown import table %q", table))
	}

	result := &dto.ImportResult{
		BatchID: uuid.New().String(),
		Table:   table,
		Errors:  []string{},
	}
	for i, row := range rows {
		if err := handler(ctx, row); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, err.Error()))
			continue
		}
		result.RecordsProcessed++
	}

	logger.Info().
		Str("batchId", result.BatchID).
		Str("table", table).
		Int("processed", result.RecordsProcessed).
		Int("failed", len(result.Errors)).
		Msg("Import batch finished")
	return result, nil
}

func (s *ImportService) importCollege(ctx context.Context, row map[string]interface{}) error {
	code := helpers.FieldString(row, "code")
	name := helpers.FieldString(row, "name")
	if code == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "code", "name"))
	}
	err := s.store.InsertCollege(ctx, &models.College{Code: code, Name: name})
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("college %s already exists", code)
	}
	return err
}

func (s *ImportService) importDepartment(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	code := helpers.FieldString(row, "code")
	name := helpers.FieldString(row, "name")
	if code == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "code", "name"))
	}
	err = s.store.InsertDepartment(ctx, &models.Department{CollegeID: collegeID, Code: code, Name: name})
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("department %s already exists in college %s", code, collegeCode)
	}
	return err
}

func (s *ImportService) importSection(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	deptCode := helpers.FieldString(row, "department_code")
	name := helpers.FieldString(row, "name")
	if deptCode == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "department_code", "name"))
	}
	deptID, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
	if err != nil {
		return err
	}
	err = s.store.InsertSection(ctx, &models.Section{DepartmentID: deptID, Name: name})
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("section %s already exists in department %s", name, deptCode)
	}
	return err
}

func (s *ImportService) importCourse(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	code := helpers.FieldString(row, "code")
	name := helpers.FieldString(row, "name")
	if code == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "code", "name"))
	}

	courseType := models.CourseType(helpers.FieldString(row, "type"))
	if courseType == "" {
		courseType = models.CourseTypeCore
	}
	if !models.ValidCourseType(courseType) {
		return fmt.Errorf("invalid course type %q", courseType)
	}

	course := &models.Course{
		CollegeID: collegeID,
		Code:      code,
		Name:      name,
		Type:      courseType,
		HasTheory: helpers.FieldBool(row, "has_theory", true),
		HasLab:    helpers.FieldBool(row, "has_lab", false),
	}

	// Courses may be departmentless; an owning department is resolved only
	// when the row names one.
	if deptCode := helpers.FieldString(row, "department_code"); deptCode != "" {
		deptID, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
		if err != nil {
			return err
		}
		course.DepartmentID = &deptID
	}

	// restricted_departments is a comma-separated list of department codes
	// barred from taking this open elective.
	if restricted := helpers.FieldString(row, "restricted_departments"); restricted != "" {
		if courseType != models.CourseTypeOpenElective {
			return fmt.Errorf("restricted_departments is only valid for open electives")
		}
		for _, deptCode := range strings.Split(restricted, ",") {
			deptCode = strings.TrimSpace(deptCode)
			if deptCode == "" {
				continue
			}
			deptID, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
			if err != nil {
				return err
			}
			course.RestrictedDepartmentIDs = append(course.RestrictedDepartmentIDs, deptID)
		}
	}

	err = s.store.InsertCourse(ctx, course)
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("course %s already exists in college %s", code, collegeCode)
	}
	return err
}

func (s *ImportService) importAcademicYear(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	name := helpers.FieldString(row, "name")
	if name == "" {
		return fmt.Errorf("missing required field %q", "name")
	}
	year := &models.AcademicYear{
		CollegeID: collegeID,
		Name:      name,
		StartDate: helpers.FieldString(row, "start_date"),
		EndDate:   helpers.FieldString(row, "end_date"),
	}
	err = s.store.InsertAcademicYear(ctx, year)
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("academic year %s already exists in college %s", name, collegeCode)
	}
	if err != nil {
		return err
	}
	// Activation goes through the store so the sibling years are deactivated
	// in the same transaction.
	if helpers.FieldBool(row, "is_active", false) {
		return s.store.ActivateAcademicYear(ctx, collegeID, year.ID)
	}
	return nil
}

func (s *ImportService) importUser(ctx context.Context, row map[string]interface{}) error {
	collegeID, _, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	username := helpers.FieldString(row, "username")
	name := helpers.FieldString(row, "name")
	password := helpers.FieldString(row, "password")
	if username == "" || name == "" || password == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "username", "name", "password"))
	}

	role := models.RoleType(strings.ToUpper(helpers.FieldString(row, "role")))
	switch role {
	case models.RoleAdmin, models.RoleReportViewer:
	case models.RoleTeacher, models.RoleStudent:
		return fmt.Errorf("role %s must be imported through its own table", role)
	default:
		return fmt.Errorf("invalid role %q", helpers.FieldString(row, "role"))
	}

	user, err := s.createUser(ctx, collegeID, username, password, name, role)
	if err != nil {
		return err
	}
	if role == models.RoleAdmin {
		return s.store.InsertAdminProfile(ctx, &models.Admin{UserID: user.ID, CollegeID: collegeID})
	}
	return s.store.InsertReportViewerProfile(ctx, &models.ReportViewer{UserID: user.ID, CollegeID: collegeID})
}

func (s *ImportService) importTeacher(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	deptCode := helpers.FieldString(row, "department_code")
	code := helpers.FieldString(row, "code")
	name := helpers.FieldString(row, "name")
	if deptCode == "" || code == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "department_code", "code", "name"))
	}
	deptID, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
	if err != nil {
		return err
	}

	// Bulk teacher files rarely carry credentials; the teacher code doubles
	// as the initial username and password.
	username := helpers.FieldString(row, "username")
	if username == "" {
		username = code
	}
	password := helpers.FieldString(row, "password")
	if password == "" {
		password = code
	}

	user, err := s.createUser(ctx, collegeID, username, password, name, models.RoleTeacher)
	if err != nil {
		return err
	}
	err = s.store.InsertTeacherProfile(ctx, &models.Teacher{
		UserID:       user.ID,
		CollegeID:    collegeID,
		DepartmentID: deptID,
		Code:         code,
	})
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("teacher %s already exists in college %s", code, collegeCode)
	}
	return err
}

func (s *ImportService) importStudent(ctx context.Context, row map[string]interface{}) error {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return err
	}
	deptCode := helpers.FieldString(row, "department_code")
	usn := helpers.FieldString(row, "usn")
	name := helpers.FieldString(row, "name")
	if deptCode == "" || usn == "" || name == "" {
		return fmt.Errorf("missing required field %q", pickMissing(row, "department_code", "usn", "name"))
	}
	deptID, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
	if err != nil {
		return err
	}

	student := &models.Student{
		CollegeID:       collegeID,
		DepartmentID:    deptID,
		USN:             usn,
		CurrentSemester: helpers.FieldInt(row, "semester", 1),
	}
	// Section is a non-owning convenience reference: absent is fine, but a
	// named section that does not resolve is a row error.
	if sectionName := helpers.FieldString(row, "section"); sectionName != "" {
		sectionID, err := s.resolver.Section(ctx, deptID, deptCode, sectionName)
		if err != nil {
			return err
		}
		student.SectionID = &sectionID
	}

	username := helpers.FieldString(row, "username")
	if username == "" {
		username = usn
	}
	password := helpers.FieldString(row, "password")
	if password == "" {
		password = usn
	}

	user, err := s.createUser(ctx, collegeID, username, password, name, models.RoleStudent)
	if err != nil {
		return err
	}
	student.UserID = user.ID
	err = s.store.InsertStudentProfile(ctx, student)
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("student %s already exists", usn)
	}
	return err
}

func (s *ImportService) importOffering(ctx context.Context, row map[string]interface{}) error {
	ref, err := s.resolveOfferingFields(ctx, row)
	if err != nil {
		return err
	}

	req := &dto.EnsureOfferingRequest{
		CourseID:       ref.courseID,
		AcademicYearID: ref.yearID,
		Semester:       ref.semester,
		SectionID:      ref.sectionID,
	}
	// The teacher is auxiliary: an absent code leaves the offering
	// unassigned, but a code that does not resolve fails the row.
	if teacherCode := helpers.FieldString(row, "teacher_code"); teacherCode != "" {
		teacherID, err := s.resolver.Teacher(ctx, ref.collegeID, ref.collegeCode, teacherCode)
		if err != nil {
			return err
		}
		req.TeacherID = &teacherID
	}

	_, _, err = s.offerings.EnsureOffering(ctx, req)
	return err
}

func (s *ImportService) importEnrollment(ctx context.Context, row map[string]interface{}) error {
	offeringID, err := s.resolveOffering(ctx, row)
	if err != nil {
		return err
	}
	studentID, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}
	_, _, err = s.enrollments.EnsureEnrollment(ctx, studentID, offeringID)
	return err
}

func (s *ImportService) importSession(ctx context.Context, row map[string]interface{}) error {
	offeringID, err := s.resolveOffering(ctx, row)
	if err != nil {
		return err
	}
	heldOn, err := helpers.FieldDate(row, "date")
	if err != nil {
		return err
	}
	session := &models.AttendanceSession{OfferingID: offeringID, HeldOn: heldOn}
	if teacherCode := helpers.FieldString(row, "teacher_code"); teacherCode != "" {
		collegeID, collegeCode, err := s.requireCollege(ctx, row)
		if err != nil {
			return err
		}
		teacherID, err := s.resolver.Teacher(ctx, collegeID, collegeCode, teacherCode)
		if err != nil {
			return err
		}
		session.TeacherID = &teacherID
	}
	return s.store.InsertAttendanceSession(ctx, session)
}

func (s *ImportService) importRecord(ctx context.Context, row map[string]interface{}) error {
	offeringID, err := s.resolveOffering(ctx, row)
	if err != nil {
		return err
	}
	date := helpers.FieldString(row, "date")
	if date == "" {
		return fmt.Errorf("missing required field %q", "date")
	}
	sessionID, err := s.store.SessionIDByOfferingDate(ctx, offeringID, date)
	if err != nil {
		return err
	}
	if sessionID == 0 {
		return apperrors.NewScopeError("Attendance session", date, "this offering")
	}
	studentID, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	status := models.AttendanceStatus(strings.ToUpper(helpers.FieldString(row, "status")))
	if status == "" {
		status = models.AttendancePresent
	}
	if status != models.AttendancePresent && status != models.AttendanceAbsent {
		return fmt.Errorf("invalid attendance status %q", helpers.FieldString(row, "status"))
	}
	err = s.store.InsertAttendanceRecord(ctx, &models.AttendanceRecord{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    status,
	})
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("attendance for %s on %s already recorded", helpers.FieldString(row, "usn"), date)
	}
	return err
}

func (s *ImportService) importTheoryMarks(ctx context.Context, row map[string]interface{}) error {
	enrollmentID, exam, err := s.resolveMarksTarget(ctx, row)
	if err != nil {
		return err
	}
	return s.store.InsertTheoryMarks(ctx, &models.TheoryMarks{
		EnrollmentID: enrollmentID,
		Exam:         exam,
		Marks:        helpers.FieldInt(row, "marks", 0),
		MaxMarks:     helpers.FieldInt(row, "max_marks", 100),
	})
}

func (s *ImportService) importLabMarks(ctx context.Context, row map[string]interface{}) error {
	enrollmentID, exam, err := s.resolveMarksTarget(ctx, row)
	if err != nil {
		return err
	}
	return s.store.InsertLabMarks(ctx, &models.LabMarks{
		EnrollmentID: enrollmentID,
		Exam:         exam,
		Marks:        helpers.FieldInt(row, "marks", 0),
		MaxMarks:     helpers.FieldInt(row, "max_marks", 100),
	})
}

// offeringRef is the resolved form of an offering uniqueness tuple named by
// natural keys in an import row.
type offeringRef struct {
	collegeID   int64
	collegeCode string
	courseID    int64
	yearID      int64
	semester    int
	sectionID   *int64
}

func (s *ImportService) resolveOfferingFields(ctx context.Context, row map[string]interface{}) (*offeringRef, error) {
	collegeID, collegeCode, err := s.requireCollege(ctx, row)
	if err != nil {
		return nil, err
	}
	courseCode := helpers.FieldString(row, "course_code")
	yearName := helpers.FieldString(row, "academic_year")
	if courseCode == "" || yearName == "" {
		return nil, fmt.Errorf("missing required field %q", pickMissing(row, "course_code", "academic_year"))
	}

	var deptID *int64
	deptCode := helpers.FieldString(row, "department_code")
	if deptCode != "" {
		id, err := s.resolver.Department(ctx, collegeID, collegeCode, deptCode)
		if err != nil {
			return nil, err
		}
		deptID = &id
	}
	courseID, err := s.resolver.Course(ctx, collegeID, collegeCode, deptID, deptCode, courseCode)
	if err != nil {
		return nil, err
	}
	yearID, err := s.resolver.AcademicYear(ctx, collegeID, collegeCode, yearName)
	if err != nil {
		return nil, err
	}

	ref := &offeringRef{
		collegeID:   collegeID,
		collegeCode: collegeCode,
		courseID:    courseID,
		yearID:      yearID,
		semester:    helpers.FieldInt(row, "semester", 1),
	}
	if sectionName := helpers.FieldString(row, "section"); sectionName != "" {
		if deptID == nil {
			return nil, fmt.Errorf("section %q requires department_code to scope it", sectionName)
		}
		sectionID, err := s.resolver.Section(ctx, *deptID, deptCode, sectionName)
		if err != nil {
			return nil, err
		}
		ref.sectionID = &sectionID
	}
	return ref, nil
}

// resolveOffering resolves an existing offering from its natural-key tuple.
// Rows that omit the section match any offering of the tuple, section-less
// first.
func (s *ImportService) resolveOffering(ctx context.Context, row map[string]interface{}) (int64, error) {
	ref, err := s.resolveOfferingFields(ctx, row)
	if err != nil {
		return 0, err
	}
	id, err := s.store.OfferingIDByTuple(ctx, ref.courseID, ref.yearID, ref.semester, ref.sectionID)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		key := fmt.Sprintf("%s/%s/sem %d", helpers.FieldString(row, "course_code"), helpers.FieldString(row, "academic_year"), ref.semester)
		return 0, apperrors.NewScopeError("Offering", key, fmt.Sprintf("college %s", ref.collegeCode))
	}
	return id, nil
}

func (s *ImportService) resolveMarksTarget(ctx context.Context, row map[string]interface{}) (int64, string, error) {
	offeringID, err := s.resolveOffering(ctx, row)
	if err != nil {
		return 0, "", err
	}
	studentID, err := s.requireStudent(ctx, row)
	if err != nil {
		return 0, "", err
	}
	// Marks attach to the enrollment, never directly to the student; a
	// missing enrollment fails the row.
	enrollmentID, err := s.store.EnrollmentIDFor(ctx, studentID, offeringID)
	if err != nil {
		return 0, "", err
	}
	if enrollmentID == 0 {
		return 0, "", fmt.Errorf("student %s is not enrolled in this offering", helpers.FieldString(row, "usn"))
	}
	exam := helpers.FieldString(row, "exam")
	if exam == "" {
		return 0, "", fmt.Errorf("missing required field %q", "exam")
	}
	return enrollmentID, exam, nil
}

func (s *ImportService) requireCollege(ctx context.Context, row map[string]interface{}) (int64, string, error) {
	code := helpers.FieldString(row, "college_code")
	if code == "" {
		return 0, "", fmt.Errorf("missing required field %q", "college_code")
	}
	id, err := s.resolver.College(ctx, code)
	if err != nil {
		return 0, "", err
	}
	return id, code, nil
}

func (s *ImportService) requireStudent(ctx context.Context, row map[string]interface{}) (int64, error) {
	usn := helpers.FieldString(row, "usn")
	if usn == "" {
		return 0, fmt.Errorf("missing required field %q", "usn")
	}
	return s.resolver.Student(ctx, usn)
}

func (s *ImportService) createUser(ctx context.Context, collegeID int64, username, password, name string, role models.RoleType) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		CollegeID: collegeID,
		Username:  username,
		Password:  string(hashed),
		Name:      name,
		RoleType:  role,
	}
	err = s.store.InsertUser(ctx, user)
	if dberrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("username %s already exists", username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// pickMissing names the first empty field out of a candidate list, for
// missing-field diagnostics.
func pickMissing(row map[string]interface{}, fields ...string) string {
	for _, f := range fields {
		if helpers.FieldString(row, f) == "" {
			return f
		}
	}
	return fields[0]
}
