package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskvault/internal/apperr"
	"taskvault/internal/domain/entity"
	"taskvault/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_id, title, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.OwnerID, t.Title, t.Description, t.Completed)

	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id))
}

func (r *TaskRepository) GetByOwnerAndTitle(ctx context.Context, ownerID, title string) (*entity.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1 AND title = $2
	`, ownerID, title))
}

// ListByOwner returns the owner's tasks in insertion order.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description,
			&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
	`, t.Title, t.Description, t.Completed, t.UpdatedAt, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description,
		&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
