package service

import (
	"context"
	"time"

	"taskdeck/internal/domain"
)

// 内存实现，按接口语义模拟存储层

type fakeUserRepo struct {
	users map[string]*domain.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, e := range f.users {
		if e.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	for id, e := range f.users {
		if id != u.ID && e.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	cp.UpdatedAt = time.Now()
	f.users[u.ID] = &cp
	return nil
}

type fakeTodoRepo struct {
	todos map[string]*domain.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]*domain.Todo{}}
}

func (f *fakeTodoRepo) Create(_ context.Context, t *domain.Todo) error {
	cp := *t
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
	}
	f.todos[t.ID] = &cp
	*t = cp
	return nil
}

func (f *fakeTodoRepo) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodoRepo) FindByOwnerCreatedBetween(_ context.Context, ownerID string, start, end time.Time) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, t := range f.todos {
		if t.OwnerID != ownerID {
			continue
		}
		if t.CreatedAt.Before(start) || t.CreatedAt.After(end) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, t *domain.Todo) error {
	cur, ok := f.todos[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != t.Version {
		return domain.ErrVersionConflict
	}
	cp := *t
	cp.Version++
	cp.UpdatedAt = time.Now()
	f.todos[t.ID] = &cp
	t.Version = cp.Version
	return nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.todos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}

func (f *fakeTodoRepo) CountBySection(_ context.Context, ownerID string, s domain.Section) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.Section == s {
			n++
		}
	}
	return n, nil
}

func (f *fakeTodoRepo) CountByPriority(_ context.Context, ownerID string, p domain.Priority) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.Priority == p {
			n++
		}
	}
	return n, nil
}

func (f *fakeTodoRepo) CountWithDueDate(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.DueDate != nil {
			n++
		}
	}
	return n, nil
}
