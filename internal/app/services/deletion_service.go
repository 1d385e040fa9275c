package services

import (
	"context"
	"fmt"

	"github.com/pskth/attendance-management-system/internal/app/models/dto"
	"github.com/pskth/attendance-management-system/internal/app/schema"
	"github.com/pskth/attendance-management-system/internal/pkg/apperrors"
	"github.com/pskth/attendance-management-system/internal/pkg/logger"
)

// DeletionStore executes graph-derived deletion work. ExecutePlan must run
// the whole plan plus the root-row delete in a single transaction and return
// the per-table deleted row counts.
type DeletionStore interface {
	RowExists(ctx context.Context, table string, id int64) (bool, error)
	CountDependents(ctx context.Context, childTable, fkColumn string, id int64) (int64, error)
	ExecutePlan(ctx context.Context, rootTable string, rootID int64, steps []schema.DeleteStep) (map[string]int64, error)
}

// DeletionService implements safe and forced deletion of aggregate roots.
// Safe deletion refuses when any direct dependent row exists; forced
// deletion cascades child-first through the schema graph.
type DeletionService struct {
	store DeletionStore
}

// NewDeletionService creates a new deletion service.
func NewDeletionService(store DeletionStore) *DeletionService {
	return &DeletionService{store: store}
}

// Delete removes the root row only if nothing depends on it. When dependents
// exist, a *apperrors.BlockedError carrying the per-table counts is returned
// and nothing is mutated.
func (s *DeletionService) Delete(ctx context.Context, entity schema.EntityType, id int64) error {
	node, err := s.rootNode(ctx, entity, id)
	if err != nil {
		return err
	}

	dependents := map[string]int64{}
	for _, edge := range schema.Children(entity) {
		n, err := s.store.CountDependents(ctx, schema.Table(edge.Child), edge.Column, id)
		if err != nil {
			return err
		}
		if n > 0 {
			dependents[schema.Table(edge.Child)] += n
		}
	}
	if len(dependents) > 0 {
		return &apperrors.BlockedError{Entity: string(entity), Dependents: dependents}
	}

	// No dependents: the plan degenerates to deleting the root row.
	if _, err := s.store.ExecutePlan(ctx, node.Table, id, nil); err != nil {
		return err
	}
	logger.Info().Str("entity", string(entity)).Int64("id", id).Msg("Entity deleted")
	return nil
}

// ForceDelete cascades the deletion of the root through every owning
// descendant, child-first, and clears non-owning references to the doomed
// rows. The whole cascade commits or rolls back atomically.
func (s *DeletionService) ForceDelete(ctx context.Context, entity schema.EntityType, id int64) (*dto.ForceDeleteResult, error) {
	node, err := s.rootNode(ctx, entity, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.ExecutePlan(ctx, node.Table, id, schema.DeletePlan(entity))
	if err != nil {
		return nil, err
	}

	logger.Warn().
		Str("entity", string(entity)).
		Int64("id", id).
		Interface("deleted", deleted).
		Msg("Forced cascade delete executed")
	return &dto.ForceDeleteResult{Entity: string(entity), ID: id, Deleted: deleted}, nil
}

func (s *DeletionService) rootNode(ctx context.Context, entity schema.EntityType, id int64) (schema.Node, error) {
	node, ok := schema.Get(entity)
	if !ok || !schema.IsAggregateRoot(entity) {
		return schema.Node{}, apperrors.NewBadRequestError(fmt.Sprintf("entity %q cannot be deleted through the cascade engine", entity))
	}
	exists, err := s.store.RowExists(ctx, node.Table, id)
	if err != nil {
		return schema.Node{}, err
	}
	if !exists {
		return schema.Node{}, apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", entity, id))
	}
	return node, nil
}
