package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportOrderParentsFirst(t *testing.T) {
	order := ImportOrder()
	require.Len(t, order, len(nodes))

	pos := map[EntityType]int{}
	for i, et := range order {
		pos[et] = i
	}
	for _, n := range nodes {
		for _, p := range n.Parents {
			require.Less(t, pos[p.Type], pos[n.Type],
				"%s must be imported before %s", p.Type, n.Type)
		}
	}
}

func TestImportOrderStartsAtCollege(t *testing.T) {
	order := ImportOrder()
	require.Equal(t, EntityCollege, order[0])
}

func TestLookupTableNames(t *testing.T) {
	et, ok := Lookup("student_enrollments")
	require.True(t, ok)
	require.Equal(t, EntityStudentEnrollment, et)

	_, ok = Lookup("no_such_table")
	require.False(t, ok)
}

func TestChildrenOfCollege(t *testing.T) {
	kinds := map[EntityType]bool{}
	for _, e := range Children(EntityCollege) {
		kinds[e.Child] = true
	}
	require.True(t, kinds[EntityDepartment])
	require.True(t, kinds[EntityCourse])
	require.True(t, kinds[EntityAcademicYear])
	require.True(t, kinds[EntityUser])
	require.False(t, kinds[EntitySection], "sections hang off departments, not colleges")
}

func TestDescendantsOfCourse(t *testing.T) {
	desc := map[EntityType]bool{}
	for _, d := range Descendants(EntityCourse) {
		desc[d] = true
	}
	require.True(t, desc[EntityCourseOffering])
	require.True(t, desc[EntityStudentEnrollment])
	require.True(t, desc[EntityTheoryMarks])
	require.True(t, desc[EntityLabMarks])
	require.True(t, desc[EntityAttendanceRecord])
	require.True(t, desc[EntityOpenElectiveRestriction])
	require.False(t, desc[EntityStudent], "students are not owned by a course")
}

func TestDeletePlanChildFirst(t *testing.T) {
	for _, root := range []EntityType{EntityCollege, EntityDepartment, EntityCourse, EntityUser} {
		plan := DeletePlan(root)
		require.NotEmpty(t, plan)

		// Once an entity's delete has run, no later step may delete or
		// traverse it again at a shallower layer.
		deleted := map[EntityType]bool{}
		for _, step := range plan {
			for _, e := range step.Via[:len(step.Via)-1] {
				require.False(t, deleted[e.Child],
					"root %s: step for %s traverses already-deleted %s", root, step.Entity, e.Child)
			}
			if step.Kind == StepDelete {
				for _, e := range Children(step.Entity) {
					if !e.Nullify {
						require.True(t, deleted[e.Child] || !isDescendant(root, e.Child),
							"root %s: %s deleted before its dependent %s", root, step.Entity, e.Child)
					}
				}
				deleted[step.Entity] = true
			}
		}
	}
}

func isDescendant(root, t EntityType) bool {
	for _, d := range Descendants(root) {
		if d == t {
			return true
		}
	}
	return false
}

func TestDeletePlanForUserCoversProfiles(t *testing.T) {
	tables := map[string]bool{}
	for _, step := range DeletePlan(EntityUser) {
		if step.Kind == StepDelete {
			tables[step.Table] = true
		}
	}
	for _, want := range []string{
		"students", "teachers", "admins", "report_viewers",
		"student_enrollments", "attendance_records", "theory_marks", "lab_marks",
	} {
		require.True(t, tables[want], "user cascade must reach %s", want)
	}
	require.False(t, tables["course_offerings"],
		"a teacher's offerings belong to the course and must be unassigned, not deleted")
}

func TestDeletePlanNullifiesTeacherReferences(t *testing.T) {
	var found bool
	for _, step := range DeletePlan(EntityUser) {
		if step.Kind == StepNullify && step.Table == "course_offerings" {
			found = true
			last := step.Via[len(step.Via)-1]
			require.Equal(t, "teacher_id", last.Column)
		}
	}
	require.True(t, found)
}

func TestDeletePlanForCollegeEndsNearRoot(t *testing.T) {
	plan := DeletePlan(EntityCollege)
	// Marks and attendance leaves come before enrollments, enrollments
	// before offerings, offerings before courses and years.
	idx := func(table string) int {
		last := -1
		for i, s := range plan {
			if s.Kind == StepDelete && s.Table == table {
				last = i
			}
		}
		require.GreaterOrEqual(t, last, 0, "no delete step for %s", table)
		return last
	}
	require.Less(t, idx("theory_marks"), idx("student_enrollments"))
	require.Less(t, idx("attendance_records"), idx("attendance_sessions"))
	require.Less(t, idx("student_enrollments"), idx("course_offerings"))
	require.Less(t, idx("course_offerings"), idx("courses"))
	require.Less(t, idx("courses"), idx("departments"))
}
