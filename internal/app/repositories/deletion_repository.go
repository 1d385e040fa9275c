package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pskth/attendance-management-system/internal/app/schema"
)

// Table and column names below come exclusively from the static schema
// graph, never from request input, so interpolating them is safe.

// RowExists reports whether a row with the given id exists.
func (s *Store) RowExists(ctx context.Context, table string, id int64) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists)
	return exists, err
}

// CountDependents counts the rows of childTable whose FK column references
// the given id.
func (s *Store) CountDependents(ctx context.Context, childTable, fkColumn string, id int64) (int64, error) {
	var n int64
	err := s.db.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, childTable, fkColumn), id).Scan(&n)
	return n, err
}

// ExecutePlan runs a cascade plan and the root-row delete in one
// transaction. Each plan step is compiled into a single statement whose
// nested subqueries walk the FK chain from the root down to the affected
// table. The returned map counts deleted rows per table; nullified
// references are not counted.
func (s *Store) ExecutePlan(ctx context.Context, rootTable string, rootID int64, steps []schema.DeleteStep) (map[string]int64, error) {
	deleted := map[string]int64{}
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, step := range steps {
			tag, err := tx.Exec(ctx, compileStep(step), rootID)
			if err != nil {
				return fmt.Errorf("cascade step on %s: %w", step.Table, err)
			}
			if step.Kind == schema.StepDelete {
				deleted[step.Table] += tag.RowsAffected()
			}
		}
		tag, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, rootTable), rootID)
		if err != nil {
			return err
		}
		deleted[rootTable] += tag.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// compileStep turns one plan step into SQL. The step's Via chain is ordered
// root-first; every edge but the last becomes a nested id subquery, and the
// last edge names the affected table and FK column.
func compileStep(step schema.DeleteStep) string {
	via := step.Via
	set := "$1"
	for _, edge := range via[:len(via)-1] {
		set = fmt.Sprintf(`SELECT id FROM %s WHERE %s IN (%s)`,
			schema.Table(edge.Child), edge.Column, set)
	}
	last := via[len(via)-1]
	if step.Kind == schema.StepNullify {
		return fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s IN (%s)`,
			step.Table, last.Column, last.Column, set)
	}
	return fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`, step.Table, last.Column, set)
}
