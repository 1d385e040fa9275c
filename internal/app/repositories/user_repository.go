package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

const userColumns = `id, college_id, username, password, name, role_type, created_at, updated_at`

// InsertUser inserts a user row and fills in its id and timestamps.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO users (college_id, username, password, name, role_type)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		user.CollegeID, user.Username, user.Password, user.Name, user.RoleType).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByUsername fetches one user by username, nil when absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetUserByID fetches one user, nil when absent.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.CollegeID, &user.Username, &user.Password,
		&user.Name, &user.RoleType, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertAdminProfile inserts an admin role profile.
func (s *Store) InsertAdminProfile(ctx context.Context, admin *models.Admin) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO admins (user_id, college_id) VALUES ($1, $2) RETURNING id`,
		admin.UserID, admin.CollegeID).Scan(&admin.ID)
}

// InsertReportViewerProfile inserts a report-viewer role profile.
func (s *Store) InsertReportViewerProfile(ctx context.Context, viewer *models.ReportViewer) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO report_viewers (user_id, college_id) VALUES ($1, $2) RETURNING id`,
		viewer.UserID, viewer.CollegeID).Scan(&viewer.ID)
}

// InsertTeacherProfile inserts a teacher role profile.
func (s *Store) InsertTeacherProfile(ctx context.Context, teacher *models.Teacher) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO teachers (user_id, college_id, department_id, code)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		teacher.UserID, teacher.CollegeID, teacher.DepartmentID, teacher.Code).Scan(&teacher.ID)
}

// InsertStudentProfile inserts a student role profile.
func (s *Store) InsertStudentProfile(ctx context.Context, student *models.Student) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO students (user_id, college_id, department_id, section_id, usn, current_semester)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		student.UserID, student.CollegeID, student.DepartmentID, student.SectionID,
		student.USN, student.CurrentSemester).Scan(&student.ID)
}

// GetStudentByID fetches one student profile, nil when absent.
func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, user_id, college_id, department_id, section_id, usn, current_semester
		 FROM students WHERE id = $1`, id).
		Scan(&student.ID, &student.UserID, &student.CollegeID, &student.DepartmentID,
			&student.SectionID, &student.USN, &student.CurrentSemester)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}
