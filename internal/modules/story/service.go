package story

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/imageproc"
	"github.com/storyshare/core/internal/pkg/pagination"
	"github.com/storyshare/core/internal/pkg/response"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/pkg/validation"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/categories"
	"github.com/storyshare/core/internal/repositories/stories"
	"go.uber.org/zap"
)

// BookmarkStats supplies per-story bookmark facts for listings.
type BookmarkStats interface {
	CountByStories(ctx context.Context, storyIDs []string) (map[string]int64, error)
	BookmarkedBy(ctx context.Context, userID string, storyIDs []string) (map[string]bool, error)
}

type Service struct {
	stories    stories.Repository
	categories categories.Repository
	stats      BookmarkStats
	store      storage.Store
	log        *zap.Logger
}

func NewService(st stories.Repository, cats categories.Repository, stats BookmarkStats, store storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{stories: st, categories: cats, stats: stats, store: store, log: log}
}

// List returns a page of stories matching f. viewerID may be empty.
func (s *Service) List(ctx context.Context, viewerID string, f stories.Filter, q pagination.Query) ([]Item, response.Pagination, error) {
	list, total, err := s.stories.List(ctx, f, q)
	if err != nil {
		return nil, response.Pagination{}, apperr.Internal(err)
	}
	items, err := s.render(ctx, viewerID, list)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return items, pagination.Meta(q, total), nil
}

// Get returns a story with up to four similar ones from its category.
func (s *Service) Get(ctx context.Context, viewerID, id string) (*Detail, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	similar, err := s.stories.Similar(ctx, st, similarLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	items, err := s.render(ctx, viewerID, append([]models.StoryModel{*st}, similar...))
	if err != nil {
		return nil, err
	}
	return &Detail{Story: items[0], Similar: items[1:]}, nil
}

// Create validates in, stores the images and saves the story owned by userID.
func (s *Service) Create(ctx context.Context, userID string, in *CreateInput) (*Item, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.CategoryID = strings.TrimSpace(in.CategoryID)

	v := validation.New()
	v.Required("title", "Title", in.Title).MaxLen("title", "Title", in.Title, validation.TitleMax)
	v.Required("content", "Content", in.Content)
	v.Required("category_id", "Category", in.CategoryID)
	checkImageCount(v, len(in.Images))
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	keys, err := s.putImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	st := &models.StoryModel{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		UserID:     userID,
		Images:     keys,
	}
	if err := s.stories.Create(ctx, st); err != nil {
		s.dropBlobs(ctx, keys)
		return nil, apperr.Internal(err)
	}
	s.log.Info("story created", zap.String("story_id", st.ID), zap.String("user_id", userID))
	return s.renderOne(ctx, userID, st.ID)
}

// Update changes a story owned by userID. Replaced images are deleted after
// the row is saved.
func (s *Service) Update(ctx context.Context, userID, id string, in *UpdateInput) (*Item, error) {
	st, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, apperr.BadRequest(msgNothingToEdit)
	}

	v := validation.New()
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		v.Required("title", "Title", t).MaxLen("title", "Title", t, validation.TitleMax)
		st.Title = t
	}
	if in.Content != nil {
		v.Required("content", "Content", *in.Content)
		st.Content = *in.Content
	}
	if in.CategoryID != nil {
		cid := strings.TrimSpace(*in.CategoryID)
		v.Required("category_id", "Category", cid)
		st.CategoryID = cid
	}
	if in.Images != nil {
		checkImageCount(v, len(in.Images))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, st.CategoryID); err != nil {
			return nil, err
		}
	}

	var stale models.StringArray
	if in.Images != nil {
		keys, err := s.putImages(ctx, in.Images)
		if err != nil {
			return nil, err
		}
		stale, st.Images = st.Images, keys
	}
	if err := s.stories.Update(ctx, st); err != nil {
		if in.Images != nil {
			s.dropBlobs(ctx, st.Images)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("Story")
		}
		return nil, apperr.Internal(err)
	}
	s.dropBlobs(ctx, stale)
	return s.renderOne(ctx, userID, st.ID)
}

// Delete soft-deletes a story owned by userID. Its images are kept.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.stories.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("Story")
		}
		return apperr.Internal(err)
	}
	s.log.Info("story deleted", zap.String("story_id", id), zap.String("user_id", userID))
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*models.StoryModel, error) {
	st, err := s.stories.GetWithAuthorAndCategory(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("Story")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return st, nil
}

// owned loads the story and checks that userID created it. A missing story
// wins over a foreign one.
func (s *Service) owned(ctx context.Context, userID, id string) (*models.StoryModel, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !st.OwnedBy(userID) {
		return nil, apperr.Forbidden()
	}
	return st, nil
}

func (s *Service) checkCategory(ctx context.Context, id string) error {
	_, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.Validation(apperr.FieldError{Field: "category_id", Message: msgCategoryExists})
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func checkImageCount(v *validation.Result, n int) {
	v.Check(n >= models.MinStoryImages && n <= models.MaxStoryImages, "images", msgImagesCount)
}

// putImages processes and stores every upload. On failure nothing stays behind.
func (s *Service) putImages(ctx context.Context, uploads []io.Reader) (models.StringArray, error) {
	images := make([]*imageproc.Image, 0, len(uploads))
	for _, r := range uploads {
		img, err := imageproc.Read(r, imageproc.Story)
		if err != nil {
			if errors.Is(err, imageproc.ErrTooLarge) || errors.Is(err, imageproc.ErrUnsupported) || errors.Is(err, imageproc.ErrEmpty) {
				return nil, apperr.Validation(apperr.FieldError{Field: "images", Message: err.Error()})
			}
			return nil, apperr.Internal(err)
		}
		images = append(images, img)
	}

	keys := make(models.StringArray, 0, len(images))
	for _, img := range images {
		key := storage.NewKey(imagePrefix, img.Ext)
		if err := s.store.Put(ctx, key, img.Body, img.ContentType); err != nil {
			s.dropBlobs(ctx, keys)
			return nil, apperr.Internal(err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *Service) dropBlobs(ctx context.Context, keys []string) {
	if err := storage.DeleteAll(ctx, s.store, keys); err != nil {
		s.log.Warn("delete story images failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *Service) renderOne(ctx context.Context, viewerID, id string) (*Item, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.render(ctx, viewerID, []models.StoryModel{*st})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) render(ctx context.Context, viewerID string, list []models.StoryModel) ([]Item, error) {
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	counts, err := s.stats.CountByStories(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	marked, err := s.stats.BookmarkedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	items := make([]Item, len(list))
	for i := range list {
		items[i] = toItem(s.store, models.StoryView{
			Story:          list[i],
			BookmarksCount: counts[list[i].ID],
			IsBookmarked:   marked[list[i].ID],
		})
	}
	return items, nil
}
