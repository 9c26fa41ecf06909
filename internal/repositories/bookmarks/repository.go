package bookmarks

import (
	"context"

	"github.com/storyshare/core/internal/models"
)

type Repository interface {
	// Find returns the bookmark for the (user, story) pair.
	Find(ctx context.Context, userID, storyID string) (*models.BookmarkModel, error)
	GetByID(ctx context.Context, id string) (*models.BookmarkModel, error)
	// Create fails with repositories.ErrDuplicate when the pair already exists.
	Create(ctx context.Context, b *models.BookmarkModel) error
	Delete(ctx context.Context, id string) error
	// DeletePair reports whether a row was removed.
	DeletePair(ctx context.Context, userID, storyID string) (bool, error)
	// ListByUser returns the user's bookmarks newest first.
	ListByUser(ctx context.Context, userID string) ([]models.BookmarkModel, error)
	CountByStories(ctx context.Context, storyIDs []string) (map[string]int64, error)
	BookmarkedBy(ctx context.Context, userID string, storyIDs []string) (map[string]bool, error)
}
