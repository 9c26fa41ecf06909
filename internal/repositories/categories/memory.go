package categories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.CategoryModel
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.CategoryModel)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.CategoryModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]models.CategoryModel, 0, len(r.byID))
	for _, c := range r.byID {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.CategoryModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) SeedIfEmpty(_ context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byID) > 0 {
		return nil
	}
	now := time.Now()
	for _, name := range names {
		c := models.CategoryModel{Name: name}
		c.ID = uuid.New().String()
		c.CreatedAt, c.UpdatedAt = now, now
		r.byID[c.ID] = c
	}
	return nil
}
