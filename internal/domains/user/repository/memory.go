package repository

import (
	"context"
	"sync"
	"time"

	"book-catalog/internal/domains/user"
)

type memoryRepository struct {
	mu     sync.RWMutex
	users  map[string]user.User
	nextID int64
}

func NewMemoryRepository() user.Repository {
	return &memoryRepository{users: make(map[string]user.User), nextID: 1}
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = *u
	return nil
}
