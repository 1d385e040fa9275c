package models

// CourseOffering represents one taught instance of a course for a given
// academic year and semester, optionally bound to a section and a teacher.
// The tuple (course, academic year, semester[, section]) is unique; a second
// creation request for the same tuple is treated as an update.
type CourseOffering struct {
	ID             int64  `json:"id" db:"id"`
	CourseID       int64  `json:"courseId" db:"course_id"`
	AcademicYearID int64  `json:"academicYearId" db:"academic_year_id"`
	Semester       int    `json:"semester" db:"semester"`
	SectionID      *int64 `json:"sectionId,omitempty" db:"section_id"`
	TeacherID      *int64 `json:"teacherId,omitempty" db:"teacher_id"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// StudentEnrollment ties a student to an offering. The (student, offering)
// pair is unique; a retake increments AttemptNumber instead of duplicating.
type StudentEnrollment struct {
	ID             int64 `json:"id" db:"id"`
	StudentID      int64 `json:"studentId" db:"student_id"`
	OfferingID     int64 `json:"offeringId" db:"offering_id"`
	AcademicYearID int64 `json:"academicYearId" db:"academic_year_id"`
	AttemptNumber  int   `json:"attemptNumber" db:"attempt_number"`
}
