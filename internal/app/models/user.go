package models

import "time"

// User defines the user model based on the 'users' table. Role profiles
// (Student, Teacher, Admin, ReportViewer) attach 1:1 to a user.
type User struct {
	ID        int64     `json:"id" db:"id"`
	CollegeID int64     `json:"collegeId" db:"college_id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name"`
	RoleType  RoleType  `json:"roleType" db:"role_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Student is the student role profile, scoped to one college and department.
// CurrentSemester is the authoritative academic-progress field.
type Student struct {
	ID              int64  `json:"id" db:"id"`
	UserID          int64  `json:"userId" db:"user_id"`
	CollegeID       int64  `json:"collegeId" db:"college_id"`
	DepartmentID    int64  `json:"departmentId" db:"department_id"`
	SectionID       *int64 `json:"sectionId,omitempty" db:"section_id"`
	USN             string `json:"usn" db:"usn"`
	CurrentSemester int    `json:"currentSemester" db:"current_semester"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}

// Teacher is the teacher role profile; its code is unique within the college.
type Teacher struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"userId" db:"user_id"`
	CollegeID    int64  `json:"collegeId" db:"college_id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	Code         string `json:"code" db:"code"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// Admin is the admin role profile.
type Admin struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"userId" db:"user_id"`
	CollegeID int64 `json:"collegeId" db:"college_id"`
}

// ReportViewer is a read-only reporting role profile.
type ReportViewer struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"userId" db:"user_id"`
	CollegeID int64 `json:"collegeId" db:"college_id"`
}
