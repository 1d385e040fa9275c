package models

// Department is owned by a college; its code is unique only within that
// college.
type Department struct {
	ID        int64  `json:"id" db:"id"`
	CollegeID int64  `json:"collegeId" db:"college_id" binding:"required"`
	Code      string `json:"code" db:"code" binding:"required"`
	Name      string `json:"name" db:"name" binding:"required"`

	// Relations (populated when needed)
	College *College `json:"college,omitempty"`
}

// Section groups students within a department; its name is unique only
// within that department.
type Section struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	Name         string `json:"name" db:"name" binding:"required"`
}
