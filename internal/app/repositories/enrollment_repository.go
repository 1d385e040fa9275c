package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// FindEnrollment fetches the enrollment for a (student, offering) pair, nil
// when absent.
func (s *Store) FindEnrollment(ctx context.Context, studentID, offeringID int64) (*models.StudentEnrollment, error) {
	var e models.StudentEnrollment
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, student_id, offering_id, academic_year_id, attempt_number
		 FROM student_enrollments WHERE student_id = $1 AND offering_id = $2`,
		studentID, offeringID).
		Scan(&e.ID, &e.StudentID, &e.OfferingID, &e.AcademicYearID, &e.AttemptNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// InsertEnrollment inserts an enrollment and fills in its id.
func (s *Store) InsertEnrollment(ctx context.Context, enrollment *models.StudentEnrollment) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO student_enrollments (student_id, offering_id, academic_year_id, attempt_number)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		enrollment.StudentID, enrollment.OfferingID, enrollment.AcademicYearID,
		enrollment.AttemptNumber).Scan(&enrollment.ID)
}

// UpdateEnrollmentAttempt sets the attempt number of an enrollment.
func (s *Store) UpdateEnrollmentAttempt(ctx context.Context, id int64, attemptNumber int) error {
	_, err := s.db.Pool.Exec(ctx,
		`UPDATE student_enrollments SET attempt_number = $1 WHERE id = $2`, attemptNumber, id)
	return err
}
