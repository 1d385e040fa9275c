package schema

// The schema graph is the single source of truth for how the academic
// entities depend on each other. Both the bulk importer (parent-before-child
// table order) and the deletion engine (child-first cascade plans) are driven
// by the static tables below instead of per-entity hand-written ordering.

// EntityType identifies one entity table in the academic schema.
type EntityType string

const (
	EntityCollege                 EntityType = "college"
	EntityDepartment              EntityType = "department"
	EntitySection                 EntityType = "section"
	EntityCourse                  EntityType = "course"
	EntityAcademicYear            EntityType = "academic_year"
	EntityOpenElectiveRestriction EntityType = "open_elective_restriction"
	EntityUser                    EntityType = "user"
	EntityTeacher                 EntityType = "teacher"
	EntityStudent                 EntityType = "student"
	EntityAdmin                   EntityType = "admin"
	EntityReportViewer            EntityType = "report_viewer"
	EntityCourseOffering          EntityType = "course_offering"
	EntityStudentEnrollment       EntityType = "student_enrollment"
	EntityAttendanceSession       EntityType = "attendance_session"
	EntityAttendanceRecord        EntityType = "attendance_record"
	EntityTheoryMarks             EntityType = "theory_marks"
	EntityLabMarks                EntityType = "lab_marks"
)

// ParentRef declares a foreign-key edge from an entity to one of its parents.
//
// Optional edges may hold NULL. An optional edge is either owning (the child
// is deleted when the parent goes away, like a department's courses) or
// non-owning (the reference is set to NULL instead, like an offering's
// teacher). Required edges are always owning.
type ParentRef struct {
	Type     EntityType
	Column   string
	Optional bool
	// Nullify marks a non-owning edge: cascades clear the column instead of
	// deleting the row. Only meaningful together with Optional.
	Nullify bool
}

// Node declares one entity: its table, the fields forming its natural key
// (used for import diagnostics), the parent whose id scopes that key, and
// its FK edges.
type Node struct {
	Type       EntityType
	Table      string
	NaturalKey []string
	Scope      EntityType
	Parents    []ParentRef
}

// Edge is a parent→child dependency as seen from the parent side.
type Edge struct {
	Parent EntityType
	Child  EntityType
	// Column is the FK column on the child's table referencing the parent.
	Column  string
	Nullify bool
}

// StepKind distinguishes cascade deletes from reference clearing.
type StepKind int

const (
	StepDelete StepKind = iota
	StepNullify
)

// DeleteStep is one layer of a cascade plan. For StepDelete, every row of
// Table whose FK chain (Via, ordered root-first) leads back to the root is
// deleted. For StepNullify, the final FK column is set to NULL instead.
type DeleteStep struct {
	Kind   StepKind
	Entity EntityType
	Table  string
	Via    []Edge
}

// nodes is declared in parent-before-child order; ImportOrder verifies this
// topologically rather than trusting the declaration.
var nodes = []Node{
	{Type: EntityCollege, Table: "colleges", NaturalKey: []string{"code"}},
	{Type: EntityDepartment, Table: "departments", NaturalKey: []string{"code"}, Scope: EntityCollege,
		Parents: []ParentRef{{Type: EntityCollege, Column: "college_id"}}},
	{Type: EntitySection, Table: "sections", NaturalKey: []string{"name"}, Scope: EntityDepartment,
		Parents: []ParentRef{{Type: EntityDepartment, Column: "department_id"}}},
	{Type: EntityCourse, Table: "courses", NaturalKey: []string{"code"}, Scope: EntityCollege,
		Parents: []ParentRef{
			{Type: EntityCollege, Column: "college_id"},
			// Departmentless courses are legal; owned ones die with the department.
			{Type: EntityDepartment, Column: "department_id", Optional: true},
		}},
	{Type: EntityAcademicYear, Table: "academic_years", NaturalKey: []string{"name"}, Scope: EntityCollege,
		Parents: []ParentRef{{Type: EntityCollege, Column: "college_id"}}},
	{Type: EntityOpenElectiveRestriction, Table: "open_elective_restrictions",
		Parents: []ParentRef{
			{Type: EntityCourse, Column: "course_id"},
			{Type: EntityDepartment, Column: "department_id"},
		}},
	{Type: EntityUser, Table: "users", NaturalKey: []string{"username"},
		Parents: []ParentRef{{Type: EntityCollege, Column: "college_id"}}},
	{Type: EntityTeacher, Table: "teachers", NaturalKey: []string{"code"}, Scope: EntityCollege,
		Parents: []ParentRef{
			{Type: EntityUser, Column: "user_id"},
			{Type: EntityCollege, Column: "college_id"},
			{Type: EntityDepartment, Column: "department_id"},
		}},
	{Type: EntityStudent, Table: "students", NaturalKey: []string{"usn"},
		Parents: []ParentRef{
			{Type: EntityUser, Column: "user_id"},
			{Type: EntityCollege, Column: "college_id"},
			{Type: EntityDepartment, Column: "department_id"},
			{Type: EntitySection, Column: "section_id", Optional: true, Nullify: true},
		}},
	{Type: EntityAdmin, Table: "admins",
		Parents: []ParentRef{
			{Type: EntityUser, Column: "user_id"},
			{Type: EntityCollege, Column: "college_id"},
		}},
	{Type: EntityReportViewer, Table: "report_viewers",
		Parents: []ParentRef{
			{Type: EntityUser, Column: "user_id"},
			{Type: EntityCollege, Column: "college_id"},
		}},
	{Type: EntityCourseOffering, Table: "course_offerings",
		Parents: []ParentRef{
			{Type: EntityCourse, Column: "course_id"},
			{Type: EntityAcademicYear, Column: "academic_year_id"},
			{Type: EntitySection, Column: "section_id", Optional: true, Nullify: true},
			{Type: EntityTeacher, Column: "teacher_id", Optional: true, Nullify: true},
		}},
	{Type: EntityStudentEnrollment, Table: "student_enrollments",
		Parents: []ParentRef{
			{Type: EntityStudent, Column: "student_id"},
			{Type: EntityCourseOffering, Column: "offering_id"},
			{Type: EntityAcademicYear, Column: "academic_year_id"},
		}},
	{Type: EntityAttendanceSession, Table: "attendance_sessions",
		Parents: []ParentRef{
			{Type: EntityCourseOffering, Column: "offering_id"},
			{Type: EntityTeacher, Column: "teacher_id", Optional: true, Nullify: true},
		}},
	{Type: EntityAttendanceRecord, Table: "attendance_records",
		Parents: []ParentRef{
			{Type: EntityAttendanceSession, Column: "session_id"},
			{Type: EntityStudent, Column: "student_id"},
		}},
	{Type: EntityTheoryMarks, Table: "theory_marks",
		Parents: []ParentRef{{Type: EntityStudentEnrollment, Column: "enrollment_id"}}},
	{Type: EntityLabMarks, Table: "lab_marks",
		Parents: []ParentRef{{Type: EntityStudentEnrollment, Column: "enrollment_id"}}},
}

// aggregateRoots are the entity types whose deletion must cascade rather
// than being removed piecemeal.
var aggregateRoots = map[EntityType]bool{
	EntityCollege:    true,
	EntityDepartment: true,
	EntityCourse:     true,
	EntityUser:       true,
}

var (
	byType   = map[EntityType]Node{}
	byTable  = map[string]EntityType{}
	children = map[EntityType][]Edge{}
)

func init() {
	for _, n := range nodes {
		byType[n.Type] = n
		byTable[n.Table] = n.Type
	}
	for _, n := range nodes {
		for _, p := range n.Parents {
			children[p.Type] = append(children[p.Type], Edge{
				Parent:  p.Type,
				Child:   n.Type,
				Column:  p.Column,
				Nullify: p.Nullify,
			})
		}
	}
}

// Get returns the node declaration for an entity type.
func Get(t EntityType) (Node, bool) {
	n, ok := byType[t]
	return n, ok
}

// Table returns the table name for an entity type.
func Table(t EntityType) string {
	return byType[t].Table
}

// Lookup maps a table name to its entity type.
func Lookup(table string) (EntityType, bool) {
	t, ok := byTable[table]
	return t, ok
}

// IsAggregateRoot reports whether blocked/forced deletion is defined for t.
func IsAggregateRoot(t EntityType) bool {
	return aggregateRoots[t]
}

// Children returns the direct dependents of t, one edge per FK.
func Children(t EntityType) []Edge {
	return children[t]
}

// OwningChildren returns the direct dependents of t excluding non-owning
// (nullify) references.
func OwningChildren(t EntityType) []Edge {
	var out []Edge
	for _, e := range children[t] {
		if !e.Nullify {
			out = append(out, e)
		}
	}
	return out
}

// ImportOrder returns all entity types topologically sorted so that every
// parent precedes every child that references it. Ties resolve in
// declaration order, keeping the result deterministic.
func ImportOrder() []EntityType {
	indegree := map[EntityType]int{}
	for _, n := range nodes {
		indegree[n.Type] = len(n.Parents)
	}
	order := make([]EntityType, 0, len(nodes))
	done := map[EntityType]bool{}
	for len(order) < len(nodes) {
		progressed := false
		for _, n := range nodes {
			if done[n.Type] || indegree[n.Type] != 0 {
				continue
			}
			done[n.Type] = true
			order = append(order, n.Type)
			for _, e := range children[n.Type] {
				indegree[e.Child]--
			}
			progressed = true
		}
		if !progressed {
			// A cycle here means the static tables are wrong; fail loudly.
			panic("schema: dependency cycle in entity declarations")
		}
	}
	return order
}

// Descendants returns every entity reachable from root via owning child
// edges, in declaration order.
func Descendants(root EntityType) []EntityType {
	seen := map[EntityType]bool{}
	var walk func(t EntityType)
	walk = func(t EntityType) {
		for _, e := range children[t] {
			if e.Nullify || seen[e.Child] {
				continue
			}
			seen[e.Child] = true
			walk(e.Child)
		}
	}
	walk(root)
	out := make([]EntityType, 0, len(seen))
	for _, n := range nodes {
		if seen[n.Type] {
			out = append(out, n.Type)
		}
	}
	return out
}

// DeletePlan computes the cascade plan for deleting a root entity: one
// StepDelete per distinct owning FK path from a descendant table back to the
// root, plus a StepNullify for every non-owning reference into the doomed
// rows. Steps are ordered child-first (an entity's steps run only after the
// steps of every entity that depends on it), so no step can orphan rows a
// later step still needs to reach through a subquery chain. Nullify steps
// for an entity run before that entity's own delete. The root row itself is
// not part of the plan.
func DeletePlan(root EntityType) []DeleteStep {
	desc := map[EntityType]bool{root: true}
	for _, t := range Descendants(root) {
		desc[t] = true
	}

	order := ImportOrder()
	var steps []DeleteStep
	for i := len(order) - 1; i >= 0; i-- {
		t := order[i]
		if !desc[t] {
			continue
		}
		// Clear non-owning references into t before t's rows disappear.
		for _, e := range children[t] {
			if !e.Nullify {
				continue
			}
			for _, via := range pathsTo(root, t) {
				steps = append(steps, DeleteStep{
					Kind:   StepNullify,
					Entity: e.Child,
					Table:  Table(e.Child),
					Via:    append(append([]Edge{}, via...), e),
				})
			}
		}
		if t == root {
			continue
		}
		for _, via := range pathsTo(root, t) {
			steps = append(steps, DeleteStep{Kind: StepDelete, Entity: t, Table: Table(t), Via: via})
		}
	}
	return steps
}

// pathsTo enumerates every simple owning-edge path from root down to target.
// The empty path is returned when target is the root itself.
func pathsTo(root, target EntityType) [][]Edge {
	var out [][]Edge
	var walk func(t EntityType, path []Edge)
	walk = func(t EntityType, path []Edge) {
		if t == target {
			cp := make([]Edge, len(path))
			copy(cp, path)
			out = append(out, cp)
			return
		}
		for _, e := range children[t] {
			if e.Nullify {
				continue
			}
			walk(e.Child, append(path, e))
		}
	}
	walk(root, nil)
	return out
}
