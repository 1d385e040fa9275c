package models

// TheoryMarks is a theory-exam score, meaningful only through an existing
// enrollment.
type TheoryMarks struct {
	ID           int64  `json:"id" db:"id"`
	EnrollmentID int64  `json:"enrollmentId" db:"enrollment_id"`
	Exam         string `json:"exam" db:"exam"`
	Marks        int    `json:"marks" db:"marks"`
	MaxMarks     int    `json:"maxMarks" db:"max_marks"`
}

// LabMarks is a lab-exam score, meaningful only through an existing
// enrollment.
type LabMarks struct {
	ID           int64  `json:"id" db:"id"`
	EnrollmentID int64  `json:"enrollmentId" db:"enrollment_id"`
	Exam         string `json:"exam" db:"exam"`
	Marks        int    `json:"marks" db:"marks"`
	MaxMarks     int    `json:"maxMarks" db:"max_marks"`
}
