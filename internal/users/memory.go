package users

import (
	"context"
	"sync"
)

// Memory is an in-memory Gateway for tests and storage-less dev runs.
type Memory struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]User)}
}

// Seed inserts a user record, replacing any existing one with the same id.
func (m *Memory) Seed(u User) {
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
}

func (m *Memory) FindByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (m *Memory) Save(ctx context.Context, u *User) error {
	m.mu.Lock()
	m.users[u.ID] = *u
	m.mu.Unlock()
	return nil
}

var _ Gateway = (*Memory)(nil)
