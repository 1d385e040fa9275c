package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// InsertCollege inserts a college and fills in its id.
func (s *Store) InsertCollege(ctx context.Context, college *models.College) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO colleges (code, name) VALUES ($1, $2) RETURNING id`,
		college.Code, college.Name).Scan(&college.ID)
}

// GetCollegeByID fetches one college, nil when absent.
func (s *Store) GetCollegeByID(ctx context.Context, id int64) (*models.College, error) {
	var college models.College
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, code, name FROM colleges WHERE id = $1`, id).
		Scan(&college.ID, &college.Code, &college.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &college, nil
}

// ListColleges returns every college ordered by code.
func (s *Store) ListColleges(ctx context.Context) ([]*models.College, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT id, code, name FROM colleges ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var college models.College
		if err := rows.Scan(&college.ID, &college.Code, &college.Name); err != nil {
			return nil, err
		}
		colleges = append(colleges, &college)
	}
	return colleges, rows.Err()
}
