package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"taskvault/internal/apperr"
)

func newTaskService(repo *fakeTaskRepo) *TaskService {
	return NewTaskService(repo, nil, nil, "")
}

func TestTaskCreate_DefaultsAndTrimming(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())

	task, err := svc.Create(context.Background(), CreateTaskInput{
		Title:       "  Buy milk  ",
		Description: " two liters ",
	}, "owner-a")
	require.NoError(t, err)
	require.Equal(t, "Buy milk", task.Title)
	require.Equal(t, "two liters", task.Description)
	require.False(t, task.Completed)
	require.Equal(t, "owner-a", task.OwnerID)
}

func TestTaskCreate_TitleBounds(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())

	_, err := svc.Create(context.Background(), CreateTaskInput{Title: "ab"}, "owner-a")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), CreateTaskInput{Title: "  a  "}, "owner-a")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), CreateTaskInput{Title: strings.Repeat("x", 101)}, "owner-a")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTaskCreate_PerOwnerTitleUniqueness(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())

	_, err := svc.Create(context.Background(), CreateTaskInput{Title: "Groceries"}, "owner-a")
	require.NoError(t, err)

	// A different owner may reuse the title.
	_, err = svc.Create(context.Background(), CreateTaskInput{Title: "Groceries"}, "owner-b")
	require.NoError(t, err)

	// The same owner may not.
	_, err = svc.Create(context.Background(), CreateTaskInput{Title: "Groceries"}, "owner-a")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestTaskOwnershipMasking(t *testing.T) {
	t.Parallel()
	repo := newFakeTaskRepo()
	svc := newTaskService(repo)

	task, err := svc.Create(context.Background(), CreateTaskInput{Title: "Private task"}, "owner-a")
	require.NoError(t, err)

	_, missingErr := svc.Get(context.Background(), "no-such-id", "owner-b")
	require.ErrorIs(t, missingErr, apperr.ErrNotFound)

	// A foreign task must fail exactly like a missing one, for every
	// operation, and leave the task untouched.
	_, err = svc.Get(context.Background(), task.ID, "owner-b")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, missingErr.Error(), err.Error())

	title := "Hijacked"
	_, err = svc.Update(context.Background(), task.ID, TaskPatch{Title: &title}, "owner-b")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Delete(context.Background(), task.ID, "owner-b")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	stored, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.Equal(t, "Private task", stored.Title)
	require.Equal(t, "owner-a", stored.OwnerID)
}

func TestTaskUpdate_TitleConflictExcludesSelf(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())

	first, err := svc.Create(context.Background(), CreateTaskInput{Title: "First title"}, "owner-a")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateTaskInput{Title: "Second title"}, "owner-a")
	require.NoError(t, err)

	// Keeping its own title is not a conflict.
	same := "First title"
	_, err = svc.Update(context.Background(), first.ID, TaskPatch{Title: &same}, "owner-a")
	require.NoError(t, err)

	// Taking a sibling's title is.
	taken := "Second title"
	_, err = svc.Update(context.Background(), first.ID, TaskPatch{Title: &taken}, "owner-a")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestTaskLifecycle(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Buy milk"}, "owner-a")
	require.NoError(t, err)
	require.False(t, task.Completed)

	list, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, task.ID, list[0].ID)

	done := true
	updated, err := svc.Update(ctx, task.ID, TaskPatch{Completed: &done}, "owner-a")
	require.NoError(t, err)
	require.True(t, updated.Completed)

	deleted, err := svc.Delete(ctx, task.ID, "owner-a")
	require.NoError(t, err)
	require.Equal(t, task.ID, deleted.ID)

	_, err = svc.Get(ctx, task.ID, "owner-a")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTaskList_ScopedAndIdempotent(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTaskInput{Title: "Task one"}, "owner-a")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskInput{Title: "Task two"}, "owner-a")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskInput{Title: "Task three"}, "owner-b")
	require.NoError(t, err)

	first, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, task := range first {
		require.Equal(t, "owner-a", task.OwnerID)
	}

	second, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Equal(t, first, second)

	// An owner with no tasks gets an empty slice, not an error.
	empty, err := svc.List(ctx, "owner-c")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestTaskOps_DenyWithoutIdentity(t *testing.T) {
	t.Parallel()
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Get(ctx, "t1", "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Create(ctx, CreateTaskInput{Title: "Some task"}, "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Update(ctx, "t1", TaskPatch{}, "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Delete(ctx, "t1", "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}
