package bookmark

import (
	"context"
	"errors"
	"strings"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/pkg/validation"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/bookmarks"
	"github.com/storyshare/core/internal/repositories/stories"
	"go.uber.org/zap"
)

type Service struct {
	bookmarks bookmarks.Repository
	stories   stories.Repository
	store     storage.Store
	log       *zap.Logger
}

func NewService(bm bookmarks.Repository, st stories.Repository, store storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{bookmarks: bm, stories: st, store: store, log: log}
}

// Toggle bookmarks the story for userID, or removes the bookmark when one
// already exists. It reports the resulting state. A unique violation on insert
// means a concurrent request created the row first, so the row is removed.
func (s *Service) Toggle(ctx context.Context, userID, storyID string) (bool, error) {
	storyID = strings.TrimSpace(storyID)
	if err := validation.New().Required("story_id", "Story", storyID).Err(); err != nil {
		return false, err
	}
	if _, err := s.stories.GetWithAuthorAndCategory(ctx, storyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperr.NotFound("Story")
		}
		return false, apperr.Internal(err)
	}

	_, err := s.bookmarks.Find(ctx, userID, storyID)
	switch {
	case err == nil:
		return false, s.unmark(ctx, userID, storyID)
	case !errors.Is(err, repositories.ErrNotFound):
		return false, apperr.Internal(err)
	}

	err = s.bookmarks.Create(ctx, &models.BookmarkModel{UserID: userID, StoryID: storyID})
	if errors.Is(err, repositories.ErrDuplicate) {
		s.log.Debug("bookmark raced, removing", zap.String("user_id", userID), zap.String("story_id", storyID))
		return false, s.unmark(ctx, userID, storyID)
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return true, nil
}

func (s *Service) unmark(ctx context.Context, userID, storyID string) error {
	if _, err := s.bookmarks.DeletePair(ctx, userID, storyID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// List returns the caller's bookmarks newest first. Bookmarks of deleted
// stories are skipped.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	marks, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	ids := make([]string, len(marks))
	for i, b := range marks {
		ids[i] = b.StoryID
	}
	list, err := s.stories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[string]*models.StoryModel, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}

	out := make([]Summary, 0, len(marks))
	for _, b := range marks {
		st, ok := byID[b.StoryID]
		if !ok {
			continue
		}
		sum := Summary{
			ID:           b.ID,
			StoryID:      st.ID,
			Title:        st.Title,
			Excerpt:      excerpt(st.Content),
			BookmarkedAt: b.CreatedAt,
		}
		if len(st.Images) > 0 {
			sum.Image = s.store.URL(st.Images[0])
		}
		if st.Category != nil {
			sum.Category = st.Category.Name
		}
		if st.User != nil {
			sum.Author = st.User.Name
		}
		out = append(out, sum)
	}
	return out, nil
}

// Delete removes a bookmark held by userID.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	b, err := s.bookmarks.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("Bookmark")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if !b.OwnedBy(userID) {
		return apperr.Forbidden()
	}
	if err := s.bookmarks.Delete(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return apperr.Internal(err)
	}
	return nil
}
