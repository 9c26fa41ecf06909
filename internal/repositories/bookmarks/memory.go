package bookmarks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories"
)

type pair struct{ user, story string }

// MemoryRepository keeps bookmarks in process. The (user, story) index
// plays the role of the unique constraint.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]models.BookmarkModel
	byPair map[pair]string
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]models.BookmarkModel),
		byPair: make(map[pair]string),
		now:    time.Now,
	}
}

func (r *MemoryRepository) Find(_ context.Context, userID, storyID string) (*models.BookmarkModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPair[pair{userID, storyID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	b := r.byID[id]
	return &b, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.BookmarkModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) Create(_ context.Context, b *models.BookmarkModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pair{b.UserID, b.StoryID}
	if _, exists := r.byPair[k]; exists {
		return repositories.ErrDuplicate
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := r.now()
	b.CreatedAt, b.UpdatedAt = now, now
	stored := *b
	stored.Story = nil
	r.byID[b.ID] = stored
	r.byPair[k] = b.ID
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byPair, pair{b.UserID, b.StoryID})
	return nil
}

func (r *MemoryRepository) DeletePair(_ context.Context, userID, storyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pair{userID, storyID}
	id, ok := r.byPair[k]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byPair, k)
	return true, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.BookmarkModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]models.BookmarkModel, 0)
	for _, b := range r.byID {
		if b.UserID == userID {
			list = append(list, b)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *MemoryRepository) CountByStories(_ context.Context, storyIDs []string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[string]bool, len(storyIDs))
	for _, id := range storyIDs {
		want[id] = true
	}
	out := make(map[string]int64, len(storyIDs))
	for k := range r.byPair {
		if want[k.story] {
			out[k.story]++
		}
	}
	return out, nil
}

func (r *MemoryRepository) BookmarkedBy(_ context.Context, userID string, storyIDs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(storyIDs))
	if userID == "" {
		return out, nil
	}
	for _, id := range storyIDs {
		if _, ok := r.byPair[pair{userID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}
