package repositories

import (
	"context"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// InsertDepartment inserts a department and fills in its id.
func (s *Store) InsertDepartment(ctx context.Context, department *models.Department) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO departments (college_id, code, name) VALUES ($1, $2, $3) RETURNING id`,
		department.CollegeID, department.Code, department.Name).Scan(&department.ID)
}

// ListDepartments returns the departments of one college ordered by code.
func (s *Store) ListDepartments(ctx context.Context, collegeID int64) ([]*models.Department, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, college_id, code, name FROM departments WHERE college_id = $1 ORDER BY code`,
		collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.CollegeID, &d.Code, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// InsertSection inserts a section and fills in its id.
func (s *Store) InsertSection(ctx context.Context, section *models.Section) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO sections (department_id, name) VALUES ($1, $2) RETURNING id`,
		section.DepartmentID, section.Name).Scan(&section.ID)
}

// ListSections returns the sections of one department ordered by name.
func (s *Store) ListSections(ctx context.Context, departmentID int64) ([]*models.Section, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, department_id, name FROM sections WHERE department_id = $1 ORDER BY name`,
		departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(&section.ID, &section.DepartmentID, &section.Name); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}
	return sections, rows.Err()
}
