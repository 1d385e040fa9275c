package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin        RoleType = "ADMIN"
	RoleTeacher      RoleType = "TEACHER"
	RoleStudent      RoleType = "STUDENT"
	RoleReportViewer RoleType = "REPORT_VIEWER"
)

// CourseType classifies how a course may be taken.
type CourseType string

const (
	CourseTypeCore               CourseType = "core"
	CourseTypeDepartmentElective CourseType = "department_elective"
	CourseTypeOpenElective       CourseType = "open_elective"
)

// ValidCourseType reports whether t is one of the known course types.
func ValidCourseType(t CourseType) bool {
	switch t {
	case CourseTypeCore, CourseTypeDepartmentElective, CourseTypeOpenElective:
		return true
	}
	return false
}

// AttendanceStatus is the per-student state recorded in one session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)
