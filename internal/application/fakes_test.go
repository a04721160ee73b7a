package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskvault/internal/apperr"
	"taskvault/internal/domain/entity"
	"taskvault/pkg/helpers"
)

// In-memory repositories for service tests. They emulate the store-level
// unique indexes: inserts and updates that would violate one fail with
// apperr.ErrConflict just like the real repositories.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.users {
		if other.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u%d", f.seq)
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	for id, other := range f.users {
		if id != u.ID && other.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int
	order []string
	tasks map[string]*entity.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*entity.Task{}}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.tasks {
		if other.OwnerID == t.OwnerID && other.Title == t.Title {
			return apperr.ErrConflict
		}
	}
	f.seq++
	t.ID = fmt.Sprintf("t%d", f.seq)
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	f.tasks[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) GetByOwnerAndTitle(ctx context.Context, ownerID, title string) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.OwnerID == ownerID && t.Title == title {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Task, 0)
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	for id, other := range f.tasks {
		if id != t.ID && other.OwnerID == t.OwnerID && other.Title == t.Title {
			return apperr.ErrConflict
		}
	}
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.tasks, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func testHasher() *helpers.PasswordHasher {
	return helpers.NewPasswordHasher(bcrypt.MinCost)
}
