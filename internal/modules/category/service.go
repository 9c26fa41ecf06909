package category

import (
	"context"
	"time"

	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/repositories/categories"
)

type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	repo categories.Repository
}

func NewService(repo categories.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	items := make([]Item, len(list))
	for i, c := range list {
		items[i] = Item{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	}
	return items, nil
}
