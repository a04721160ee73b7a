package repository

import (
	"context"

	"taskvault/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
// Implementations map a store-level unique violation on email to
// apperr.ErrConflict and an absent row to apperr.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
