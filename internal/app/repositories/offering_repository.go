package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/models"
)

const offeringColumns = `id, course_id, academic_year_id, semester, section_id, teacher_id`

// FindOffering fetches the offering matching the full uniqueness tuple. A
// nil sectionID matches the section-less row only; resolving "any section"
// is the lookup layer's job, not this one's.
func (s *Store) FindOffering(ctx context.Context, courseID, academicYearID int64, semester int, sectionID *int64) (*models.CourseOffering, error) {
	return s.scanOffering(s.db.Pool.QueryRow(ctx,
		`SELECT `+offeringColumns+` FROM course_offerings
		 WHERE course_id = $1 AND academic_year_id = $2 AND semester = $3
		   AND section_id IS NOT DISTINCT FROM $4`,
		courseID, academicYearID, semester, sectionID))
}

// InsertOffering inserts an offering and fills in its id.
func (s *Store) InsertOffering(ctx context.Context, offering *models.CourseOffering) error {
	return s.db.Pool.QueryRow(ctx,
		`INSERT INTO course_offerings (course_id, academic_year_id, semester, section_id, teacher_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		offering.CourseID, offering.AcademicYearID, offering.Semester,
		offering.SectionID, offering.TeacherID).Scan(&offering.ID)
}

// UpdateOfferingAssignments updates only the supplied assignment columns;
// nil arguments leave their columns untouched.
func (s *Store) UpdateOfferingAssignments(ctx context.Context, id int64, sectionID, teacherID *int64) error {
	var sets []string
	var args []interface{}
	if sectionID != nil {
		args = append(args, *sectionID)
		sets = append(sets, fmt.Sprintf("section_id = $%d", len(args)))
	}
	if teacherID != nil {
		args = append(args, *teacherID)
		sets = append(sets, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE course_offerings SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))
	_, err := s.db.Pool.Exec(ctx, query, args...)
	return err
}

// GetOfferingByID fetches one offering, nil when absent.
func (s *Store) GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	return s.scanOffering(s.db.Pool.QueryRow(ctx,
		`SELECT `+offeringColumns+` FROM course_offerings WHERE id = $1`, id))
}

// ListOfferings returns every offering of one academic year.
func (s *Store) ListOfferings(ctx context.Context, academicYearID int64) ([]*models.CourseOffering, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+offeringColumns+` FROM course_offerings
		 WHERE academic_year_id = $1 ORDER BY course_id, semester, section_id`,
		academicYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		var o models.CourseOffering
		if err := rows.Scan(&o.ID, &o.CourseID, &o.AcademicYearID, &o.Semester,
			&o.SectionID, &o.TeacherID); err != nil {
			return nil, err
		}
		offerings = append(offerings, &o)
	}
	return offerings, rows.Err()
}

func (s *Store) scanOffering(row pgx.Row) (*models.CourseOffering, error) {
	var o models.CourseOffering
	err := row.Scan(&o.ID, &o.CourseID, &o.AcademicYearID, &o.Semester, &o.SectionID, &o.TeacherID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
