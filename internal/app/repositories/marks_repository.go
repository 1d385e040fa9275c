package repositories

import (
	"context"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// InsertTheoryMarks inserts a theory-exam score and fills in its id.
func (s *Store) InsertTheoryMarks(ctx context.Context, marks *models.TheoryMarks) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO theory_marks (enrollment_id, exam, marks, max_marks)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		marks.EnrollmentID, marks.Exam, marks.Marks, marks.MaxMarks).Scan(&marks.ID)
}

// InsertLabMarks inserts a lab-exam score and fills in its id.
func (s *Store) InsertLabMarks(ctx context.Context, marks *models.LabMarks) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO lab_marks (enrollment_id, exam, marks, max_marks)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		marks.EnrollmentID, marks.Exam, marks.Marks, marks.MaxMarks).Scan(&marks.ID)
}
