package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

const academicYearColumns = `id, college_id, name,
	COALESCE(to_char(start_date, 'YYYY-MM-DD'), ''),
	COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''), is_active`

// InsertAcademicYear inserts an academic year and fills in its id. Empty
// date strings are stored as NULL.
func (s *Store) InsertAcademicYear(ctx context.Context, year *models.AcademicYear) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO academic_years (college_id, name, start_date, end_date, is_active)
		 VALUES ($1, $2, NULLIF($3, '')::date, NULLIF($4, '')::date, $5) RETURNING id`,
		year.CollegeID, year.Name, year.StartDate, year.EndDate, year.IsActive).Scan(&year.ID)
}

// ActivateAcademicYear makes one year active and deactivates the college's
// other years in the same transaction, so at most one row per college is
// ever active.
func (s *Store) ActivateAcademicYear(ctx context.Context, collegeID, yearID int64) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = false WHERE college_id = $1 AND is_active`,
			collegeID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = true WHERE id = $1 AND college_id = $2`,
			yearID, collegeID)
		return err
	})
}

// GetAcademicYearByID fetches one academic year, nil when absent.
func (s *Store) GetAcademicYearByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.scanAcademicYear(s.db.Pool.QueryRow(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE id = $1`, id))
}

// GetActiveAcademicYear fetches the college's active year, nil when none.
func (s *Store) GetActiveAcademicYear(ctx context.Context, collegeID int64) (*models.AcademicYear, error) {
	return s.scanAcademicYear(s.db.Pool.QueryRow(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE college_id = $1 AND is_active`,
		collegeID))
}

// ListAcademicYears returns the years of one college, newest name first.
func (s *Store) ListAcademicYears(ctx context.Context, collegeID int64) ([]*models.AcademicYear, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years WHERE college_id = $1 ORDER BY name DESC`,
		collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(&year.ID, &year.CollegeID, &year.Name,
			&year.StartDate, &year.EndDate, &year.IsActive); err != nil {
			return nil, err
		}
		years = append(years, &year)
	}
	return years, rows.Err()
}

func (s *Store) scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := row.Scan(&year.ID, &year.CollegeID, &year.Name,
		&year.StartDate, &year.EndDate, &year.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &year, nil
}
