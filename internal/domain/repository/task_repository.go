package repository

import (
	"context"

	"taskvault/internal/domain/entity"
)

// TaskRepository defines the interface for task persistence. Lookups are
// unscoped; ownership is enforced one layer up so that a cross-tenant hit
// and a miss are indistinguishable to the caller. Implementations map a
// (owner_id, title) unique violation to apperr.ErrConflict.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	GetByOwnerAndTitle(ctx context.Context, ownerID, title string) (*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
}
