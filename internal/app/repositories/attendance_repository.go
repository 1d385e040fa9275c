package repositories

import (
	"context"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// InsertAttendanceSession inserts an attendance session and fills in its id.
func (s *Store) InsertAttendanceSession(ctx context.Context, session *models.AttendanceSession) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO attendance_sessions (offering_id, teacher_id, held_on)
		 VALUES ($1, $2, $3) RETURNING id`,
		session.OfferingID, session.TeacherID, session.HeldOn).Scan(&session.ID)
}

// InsertAttendanceRecord inserts one student's attendance state for a
// session and fills in its id.
func (s *Store) InsertAttendanceRecord(ctx context.Context, record *models.AttendanceRecord) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO attendance_records (session_id, student_id, status)
		 VALUES ($1, $2, $3) RETURNING id`,
		record.SessionID, record.StudentID, record.Status).Scan(&record.ID)
}
