package dto

// EnsureOfferingRequest asks for an offering of the uniqueness tuple
// (course, academic year, semester[, section]) to exist. SectionID and
// TeacherID update the existing row only when explicitly supplied.
type EnsureOfferingRequest struct {
	CourseID       int64  `json:"courseId" binding:"required"`
	AcademicYearID int64  `json:"academicYearId" binding:"required"`
	Semester       int    `json:"semester" binding:"required"`
	SectionID      *int64 `json:"sectionId,omitempty"`
	TeacherID      *int64 `json:"teacherId,omitempty"`
}

// EnrollBatchRequest enrolls a set of students into one offering. Each
// student is processed independently; one failure never blocks the others.
type EnrollBatchRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required"`
}

// Enrollment statuses reported per student.
const (
	EnrollStatusEnrolled        = "enrolled"
	EnrollStatusAlreadyEnrolled = "already_enrolled"
	EnrollStatusError           = "error"
)

// EnrollmentOutcome is the per-student result record of a batch enrollment.
type EnrollmentOutcome struct {
	StudentID int64  `json:"studentId"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// EnrollBatchResult summarizes a batch enrollment.
type EnrollBatchResult struct {
	OfferingID      int64               `json:"offeringId"`
	Enrolled        int                 `json:"enrolled"`
	AlreadyEnrolled int                 `json:"alreadyEnrolled"`
	Errors          int                 `json:"errors"`
	Results         []EnrollmentOutcome `json:"results"`
}
