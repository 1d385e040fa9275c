package models

// Course represents a taught subject. Courses may be departmentless
// (cross-cutting), in which case DepartmentID is nil and the course is
// identified by its college-unique code alone.
type Course struct {
	ID           int64      `json:"id" db:"id"`
	CollegeID    int64      `json:"collegeId" db:"college_id" binding:"required"`
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"`
	Code         string     `json:"code" db:"code" binding:"required"`
	Name         string     `json:"name" db:"name" binding:"required"`
	Type         CourseType `json:"type" db:"course_type" binding:"required"`
	HasTheory    bool       `json:"hasTheory" db:"has_theory"`
	HasLab       bool       `json:"hasLab" db:"has_lab"`

	// RestrictedDepartmentIDs lists departments excluded from taking this
	// course when it is an open elective. Stored in
	// open_elective_restrictions, not on the courses row.
	RestrictedDepartmentIDs []int64 `json:"restrictedDepartmentIds,omitempty"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// AcademicYear is owned by a college. At most one year per college is active
// at a time; activation deactivates the siblings transactionally.
type AcademicYear struct {
	ID        int64  `json:"id" db:"id"`
	CollegeID int64  `json:"collegeId" db:"college_id" binding:"required"`
	Name      string `json:"name" db:"name" binding:"required"`
	StartDate string `json:"startDate" db:"start_date"`
	EndDate   string `json:"endDate" db:"end_date"`
	IsActive  bool   `json:"isActive" db:"is_active"`
}
