package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories"
)

// MemoryRepository keeps users in process. Username and email are unique
// case-insensitively, matching the MySQL collation.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.UserModel
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.UserModel)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflict(user.Username, user.Email, "") {
		return repositories.ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByLogin(_ context.Context, login string) (*models.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *MemoryRepository) UsernameTaken(_ context.Context, username, exceptID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflict(username, "", exceptID), nil
}

func (r *MemoryRepository) EmailTaken(_ context.Context, email, exceptID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflict("", email, exceptID), nil
}

func (r *MemoryRepository) Update(_ context.Context, user *models.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.conflict(user.Username, user.Email, user.ID) {
		return repositories.ErrDuplicate
	}
	user.CreatedAt = prev.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) conflict(username, email, exceptID string) bool {
	for id, u := range r.users {
		if id == exceptID {
			continue
		}
		if username != "" && strings.EqualFold(u.Username, username) {
			return true
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
