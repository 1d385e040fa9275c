package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

// InsertCourse inserts a course together with its open-elective restriction
// rows, atomically.
func (s *Store) InsertCourse(ctx context.Context, course *models.Course) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO courses (college_id, department_id, code, name, course_type, has_theory, has_lab)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			course.CollegeID, course.DepartmentID, course.Code, course.Name,
			course.Type, course.HasTheory, course.HasLab).Scan(&course.ID)
		if err != nil {
			return err
		}
		for _, deptID := range course.RestrictedDepartmentIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO open_elective_restrictions (course_id, department_id) VALUES ($1, $2)`,
				course.ID, deptID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCourseByID fetches one course with its restriction list, nil when
// absent.
func (s *Store) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, college_id, department_id, code, name, course_type, has_theory, has_lab
		 FROM courses WHERE id = $1`, id).
		Scan(&course.ID, &course.CollegeID, &course.DepartmentID, &course.Code,
			&course.Name, &course.Type, &course.HasTheory, &course.HasLab)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	restricted, err := s.RestrictedDepartmentIDs(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.RestrictedDepartmentIDs = restricted
	return &course, nil
}

// ListCourses returns the courses of one college ordered by code.
func (s *Store) ListCourses(ctx context.Context, collegeID int64) ([]*models.Course, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, college_id, department_id, code, name, course_type, has_theory, has_lab
		 FROM courses WHERE college_id = $1 ORDER BY code`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.CollegeID, &course.DepartmentID, &course.Code,
			&course.Name, &course.Type, &course.HasTheory, &course.HasLab); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}
	return courses, rows.Err()
}

// RestrictedDepartmentIDs returns the departments barred from taking an open
// elective.
func (s *Store) RestrictedDepartmentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT department_id FROM open_elective_restrictions WHERE course_id = $1 ORDER BY department_id`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
