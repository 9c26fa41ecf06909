package stories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/pagination"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/categories"
	"github.com/storyshare/core/internal/repositories/users"
)

// MemoryRepository keeps stories in process and resolves authors and
// categories through the sibling repositories.
type MemoryRepository struct {
	mu         sync.RWMutex
	stories    map[string]models.StoryModel
	users      users.Repository
	categories categories.Repository
	popularity Popularity
	now        func() time.Time
}

func NewMemoryRepository(u users.Repository, c categories.Repository, p Popularity) *MemoryRepository {
	return &MemoryRepository{
		stories:    make(map[string]models.StoryModel),
		users:      u,
		categories: c,
		popularity: p,
		now:        time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, story *models.StoryModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	now := r.now()
	story.CreatedAt, story.UpdatedAt = now, now
	r.stories[story.ID] = stripped(*story)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, story *models.StoryModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.live(story.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	prev.Title = story.Title
	prev.Content = story.Content
	prev.CategoryID = story.CategoryID
	prev.Images = story.Images.Clone()
	prev.UpdatedAt = r.now()
	story.UpdatedAt = prev.UpdatedAt
	r.stories[prev.ID] = prev
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.live(id)
	if !ok {
		return repositories.ErrNotFound
	}
	s.DeletedAt.Time = r.now()
	s.DeletedAt.Valid = true
	r.stories[id] = s
	return nil
}

func (r *MemoryRepository) GetWithAuthorAndCategory(ctx context.Context, id string) (*models.StoryModel, error) {
	r.mu.RLock()
	s, ok := r.live(id)
	r.mu.RUnlock()
	if !ok {
		return nil, repositories.ErrNotFound
	}
	r.populate(ctx, &s)
	return &s, nil
}

func (r *MemoryRepository) ListByIDs(ctx context.Context, ids []string) ([]models.StoryModel, error) {
	r.mu.RLock()
	list := make([]models.StoryModel, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.live(id); ok {
			list = append(list, s)
		}
	}
	r.mu.RUnlock()
	for i := range list {
		r.populate(ctx, &list[i])
	}
	return list, nil
}

func (r *MemoryRepository) List(ctx context.Context, f Filter, q pagination.Query) ([]models.StoryModel, int64, error) {
	r.mu.RLock()
	all := r.snapshot()
	r.mu.RUnlock()

	list := make([]models.StoryModel, 0, len(all))
	for _, s := range all {
		if f.CategoryID != "" && s.CategoryID != f.CategoryID {
			continue
		}
		if f.UserID != "" && s.UserID != f.UserID {
			continue
		}
		if f.Title != "" && !containsFold(s.Title, f.Title) {
			continue
		}
		r.populate(ctx, &s)
		if f.Search != "" && !containsFold(s.Title, f.Search) && (s.User == nil || !containsFold(s.User.Name, f.Search)) {
			continue
		}
		list = append(list, s)
	}

	newest := func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) }
	switch f.Sort {
	case SortOldest:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	case SortTitle:
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Title != list[j].Title {
				return list[i].Title < list[j].Title
			}
			return newest(i, j)
		})
	case SortPopularity:
		counts := map[string]int64{}
		if r.popularity != nil {
			ids := make([]string, len(list))
			for i := range list {
				ids[i] = list[i].ID
			}
			var err error
			if counts, err = r.popularity.CountByStories(ctx, ids); err != nil {
				return nil, 0, err
			}
		}
		sort.SliceStable(list, func(i, j int) bool {
			ci, cj := counts[list[i].ID], counts[list[j].ID]
			if ci != cj {
				return ci > cj
			}
			return newest(i, j)
		})
	default:
		sort.SliceStable(list, newest)
	}

	total := int64(len(list))
	start := q.Offset()
	if start < 0 || start >= len(list) {
		return []models.StoryModel{}, total, nil
	}
	end := start + q.Size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total, nil
}

func (r *MemoryRepository) Similar(ctx context.Context, story *models.StoryModel, limit int) ([]models.StoryModel, error) {
	r.mu.RLock()
	all := r.snapshot()
	r.mu.RUnlock()

	list := make([]models.StoryModel, 0)
	for _, s := range all {
		if s.ID != story.ID && s.CategoryID == story.CategoryID {
			list = append(list, s)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	for i := range list {
		r.populate(ctx, &list[i])
	}
	return list, nil
}

func (r *MemoryRepository) live(id string) (models.StoryModel, bool) {
	s, ok := r.stories[id]
	if !ok || s.DeletedAt.Valid {
		return models.StoryModel{}, false
	}
	s.Images = s.Images.Clone()
	return s, true
}

func (r *MemoryRepository) snapshot() []models.StoryModel {
	out := make([]models.StoryModel, 0, len(r.stories))
	for id := range r.stories {
		if s, ok := r.live(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *MemoryRepository) populate(ctx context.Context, s *models.StoryModel) {
	if r.users != nil {
		if u, err := r.users.GetByID(ctx, s.UserID); err == nil {
			s.User = u
		}
	}
	if r.categories != nil {
		if c, err := r.categories.GetByID(ctx, s.CategoryID); err == nil {
			s.Category = c
		}
	}
}

func stripped(s models.StoryModel) models.StoryModel {
	s.User, s.Category = nil, nil
	s.Images = s.Images.Clone()
	return s
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
