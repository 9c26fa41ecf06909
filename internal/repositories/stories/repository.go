package stories

import (
	"context"
	"strings"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/pagination"
)

type Sort string

const (
	SortLatest     Sort = "latest"
	SortOldest     Sort = "oldest"
	SortTitle      Sort = "title"
	SortPopularity Sort = "popularity"
)

// ParseSort falls back to SortLatest for unknown values.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortTitle:
		return SortTitle
	case SortPopularity:
		return SortPopularity
	default:
		return SortLatest
	}
}

// Filter narrows a story listing. Empty fields do not filter.
type Filter struct {
	CategoryID string
	UserID     string
	Title      string
	// Search matches the title or the author's name.
	Search string
	Sort   Sort
}

// Repository returns stories with User and Category populated.
type Repository interface {
	Create(ctx context.Context, story *models.StoryModel) error
	Update(ctx context.Context, story *models.StoryModel) error
	Delete(ctx context.Context, id string) error
	GetWithAuthorAndCategory(ctx context.Context, id string) (*models.StoryModel, error)
	// ListByIDs skips missing and deleted stories.
	ListByIDs(ctx context.Context, ids []string) ([]models.StoryModel, error)
	List(ctx context.Context, f Filter, q pagination.Query) ([]models.StoryModel, int64, error)
	// Similar returns up to limit newest stories in the same category, excluding the story itself.
	Similar(ctx context.Context, story *models.StoryModel, limit int) ([]models.StoryModel, error)
}

// Popularity supplies bookmark counts for ordering.
type Popularity interface {
	CountByStories(ctx context.Context, storyIDs []string) (map[string]int64, error)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
