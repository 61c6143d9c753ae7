package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/pos-inventario/internal/domain/user"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func newUserRepository() *userRepository {
	return &userRepository{users: make(map[string]*user.User)}
}

func (r *userRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.users {
		if other.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == user.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
