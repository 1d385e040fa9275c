package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pskth/attendance-management-system/internal/app/schema"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
)

// fakeRow is one row in the planStore: its id plus FK column values, with 0
// standing in for NULL.
type fakeRow struct {
	id  int64
	fks map[string]int64
}

// planStore interprets cascade plans against in-memory tables the same way
// the pgx store compiles them into nested subqueries, so the plan shape
// produced by the graph is what actually gets tested.
type planStore struct {
	rows map[string][]*fakeRow
}

func newPlanStore() *planStore {
	return &planStore{rows: map[string][]*fakeRow{}}
}

func (p *planStore) add(table string, id int64, fks map[string]int64) {
	if fks == nil {
		fks = map[string]int64{}
	}
	p.rows[table] = append(p.rows[table], &fakeRow{id: id, fks: fks})
}

func (p *planStore) find(table string, id int64) *fakeRow {
	for _, r := range p.rows[table] {
		if r.id == id {
			return r
		}
	}
	return nil
}

func (p *planStore) RowExists(_ context.Context, table string, id int64) (bool, error) {
	return p.find(table, id) != nil, nil
}

func (p *planStore) CountDependents(_ context.Context, childTable, fkColumn string, id int64) (int64, error) {
	var n int64
	for _, r := range p.rows[childTable] {
		if r.fks[fkColumn] == id {
			n++
		}
	}
	return n, nil
}

func (p *planStore) ExecutePlan(_ context.Context, rootTable string, rootID int64, steps []schema.DeleteStep) (map[string]int64, error) {
	deleted := map[string]int64{}
	for _, step := range steps {
		ids := map[int64]bool{rootID: true}
		via := step.Via
		for _, edge := range via[:len(via)-1] {
			next := map[int64]bool{}
			for _, r := range p.rows[schema.Table(edge.Child)] {
				if ids[r.fks[edge.Column]] {
					next[r.id] = true
				}
			}
			ids = next
		}
		last := via[len(via)-1]
		if step.Kind == schema.StepNullify {
			for _, r := range p.rows[step.Table] {
				if ids[r.fks[last.Column]] {
					r.fks[last.Column] = 0
				}
			}
			continue
		}
		var kept []*fakeRow
		for _, r := range p.rows[step.Table] {
			if ids[r.fks[last.Column]] {
				deleted[step.Table]++
			} else {
				kept = append(kept, r)
			}
		}
		p.rows[step.Table] = kept
	}
	var kept []*fakeRow
	for _, r := range p.rows[rootTable] {
		if r.id == rootID {
			deleted[rootTable]++
		} else {
			kept = append(kept, r)
		}
	}
	p.rows[rootTable] = kept
	return deleted, nil
}

func TestDeleteWithoutDependents(t *testing.T) {
	store := newPlanStore()
	store.add("colleges", 1, nil)
	svc := NewDeletionService(store)

	require.NoError(t, svc.Delete(context.Background(), schema.EntityCollege, 1))
	require.Nil(t, store.find("colleges", 1))
}

func TestDeleteBlockedByDependents(t *testing.T) {
	store := newPlanStore()
	store.add("colleges", 1, nil)
	store.add("departments", 2, map[string]int64{"college_id": 1})
	store.add("departments", 3, map[string]int64{"college_id": 1})
	store.add("users", 4, map[string]int64{"college_id": 1})
	svc := NewDeletionService(store)

	err := svc.Delete(context.Background(), schema.EntityCollege, 1)
	var blocked *apperrors.BlockedError
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, "college", blocked.Entity)
	require.Equal(t, int64(2), blocked.Dependents["departments"])
	require.Equal(t, int64(1), blocked.Dependents["users"])

	// A blocked delete mutates nothing.
	require.NotNil(t, store.find("colleges", 1))
	require.NotNil(t, store.find("departments", 2))
}

func TestDeleteRejectsNonRootEntities(t *testing.T) {
	store := newPlanStore()
	store.add("sections", 1, nil)
	svc := NewDeletionService(store)

	err := svc.Delete(context.Background(), schema.EntitySection, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be deleted")
	require.NotNil(t, store.find("sections", 1))
}

func TestDeleteMissingRow(t *testing.T) {
	svc := NewDeletionService(newPlanStore())

	err := svc.Delete(context.Background(), schema.EntityCollege, 42)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestForceDeleteCascadesChildFirst(t *testing.T) {
	store := newPlanStore()
	store.add("courses", 10, nil)
	store.add("course_offerings", 20, map[string]int64{"course_id": 10})
	store.add("student_enrollments", 30, map[string]int64{"offering_id": 20, "student_id": 7})
	store.add("theory_marks", 40, map[string]int64{"enrollment_id": 30})
	store.add("attendance_sessions", 50, map[string]int64{"offering_id": 20})
	store.add("attendance_records", 60, map[string]int64{"session_id": 50, "student_id": 7})
	// An unrelated course must survive untouched.
	store.add("courses", 11, nil)
	store.add("course_offerings", 21, map[string]int64{"course_id": 11})
	svc := NewDeletionService(store)

	result, err := svc.ForceDelete(context.Background(), schema.EntityCourse, 10)
	require.NoError(t, err)
	require.Equal(t, int64(10), result.ID)
	require.Equal(t, int64(1), result.Deleted["courses"])
	require.Equal(t, int64(1), result.Deleted["course_offerings"])
	require.Equal(t, int64(1), result.Deleted["student_enrollments"])
	require.Equal(t, int64(1), result.Deleted["theory_marks"])
	require.Equal(t, int64(1), result.Deleted["attendance_sessions"])
	require.Equal(t, int64(1), result.Deleted["attendance_records"])

	require.Nil(t, store.find("theory_marks", 40))
	require.Nil(t, store.find("attendance_records", 60))
	require.NotNil(t, store.find("courses", 11))
	require.NotNil(t, store.find("course_offerings", 21))
}

func TestForceDeleteNullifiesTeacherReferences(t *testing.T) {
	store := newPlanStore()
	store.add("users", 1, nil)
	store.add("teachers", 2, map[string]int64{"user_id": 1})
	store.add("course_offerings", 3, map[string]int64{"course_id": 9, "teacher_id": 2})
	store.add("attendance_sessions", 4, map[string]int64{"offering_id": 3, "teacher_id": 2})
	svc := NewDeletionService(store)

	result, err := svc.ForceDelete(context.Background(), schema.EntityUser, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Deleted["users"])
	require.Equal(t, int64(1), result.Deleted["teachers"])

	// Offerings and sessions the teacher was assigned to survive with the
	// reference cleared.
	offering := store.find("course_offerings", 3)
	require.NotNil(t, offering)
	require.Zero(t, offering.fks["teacher_id"])
	session := store.find("attendance_sessions", 4)
	require.NotNil(t, session)
	require.Zero(t, session.fks["teacher_id"])
}

func TestDeleteUserBlockedByProfile(t *testing.T) {
	store := newPlanStore()
	store.add("users", 1, nil)
	store.add("teachers", 2, map[string]int64{"user_id": 1})
	svc := NewDeletionService(store)

	err := svc.Delete(context.Background(), schema.EntityUser, 1)
	var blocked *apperrors.BlockedError
	require.True(t, errors.As(err, &blocked))
	require.Equal(t, int64(1), blocked.Dependents["teachers"])
}
