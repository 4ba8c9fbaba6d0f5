package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/hobbylink/internal/domain"
	"github.com/oksasatya/hobbylink/internal/domain/entity"
	repo "github.com/oksasatya/hobbylink/internal/domain/repository"
)

// memoryRepo is an in-memory UserRepository used by the engine tests. WithTx
// runs the body against a copy of the state and swaps it in on success, so
// rollback semantics match the real store.
type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	inTx  bool
}

var _ repo.UserRepository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Hobbies = append([]string(nil), u.Hobbies...)
	c.Friends = append([]string(nil), u.Friends...)
	return &c
}

func cloneUsers(users map[string]*entity.User) map[string]*entity.User {
	out := make(map[string]*entity.User, len(users))
	for id, u := range users {
		out[id] = cloneUser(u)
	}
	return out
}

func (r *memoryRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *memoryRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return fmt.Errorf("insert user %q: %w", u.Username, domain.ErrDuplicateUsername)
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	return cloneUser(u), nil
}

func (r *memoryRepo) List(_ context.Context) ([]*entity.User, error) {
	defer r.lock()()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, u *entity.User) error {
	defer r.lock()()
	current, ok := r.users[u.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrUserNotFound)
	}
	for id, other := range r.users {
		if id != u.ID && other.Username == u.Username {
			return fmt.Errorf("rename user to %q: %w", u.Username, domain.ErrDuplicateUsername)
		}
	}
	next := cloneUser(u)
	next.CreatedAt = current.CreatedAt
	r.users[u.ID] = next
	return nil
}

func (r *memoryRepo) UpdateScore(_ context.Context, id string, score float64) error {
	defer r.lock()()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	u.PopularityScore = score
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *memoryRepo) WithTx(_ context.Context, fn func(repo.UserRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryRepo{users: cloneUsers(r.users), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	r.users = tx.users
	return nil
}

// seed bypasses the engine to install a user row directly, friends included.
func (r *memoryRepo) seed(u *entity.User) *entity.User {
	defer r.lock()()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = cloneUser(u)
	return u
}
