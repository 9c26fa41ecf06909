package stories

import (
	"context"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/pagination"
	"github.com/storyshare/core/internal/repositories"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) populated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Category")
}

func (r *GormRepository) Create(ctx context.Context, story *models.StoryModel) error {
	return repositories.Translate(r.db.WithContext(ctx).Create(story).Error)
}

func (r *GormRepository) Update(ctx context.Context, story *models.StoryModel) error {
	err := r.db.WithContext(ctx).Model(story).
		Select("title", "content", "category_id", "images").
		Updates(story).Error
	return repositories.Translate(err)
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.StoryModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *GormRepository) GetWithAuthorAndCategory(ctx context.Context, id string) (*models.StoryModel, error) {
	var s models.StoryModel
	if err := r.populated(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, repositories.Translate(err)
	}
	return &s, nil
}

func (r *GormRepository) ListByIDs(ctx context.Context, ids []string) ([]models.StoryModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.StoryModel
	if err := r.populated(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepository) List(ctx context.Context, f Filter, q pagination.Query) ([]models.StoryModel, int64, error) {
	db := r.db.WithContext(ctx).Model(&models.StoryModel{})
	if f.CategoryID != "" {
		db = db.Where("stories.category_id = ?", f.CategoryID)
	}
	if f.UserID != "" {
		db = db.Where("stories.user_id = ?", f.UserID)
	}
	if f.Title != "" {
		db = db.Where("stories.title LIKE ?", likePattern(f.Title))
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		authors := r.db.Model(&models.UserModel{}).Select("id").Where("name LIKE ?", like)
		db = db.Where("stories.title LIKE ? OR stories.user_id IN (?)", like, authors)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case SortOldest:
		db = db.Order("stories.created_at ASC")
	case SortTitle:
		db = db.Order("stories.title ASC").Order("stories.created_at DESC")
	case SortPopularity:
		counts := r.db.Model(&models.BookmarkModel{}).
			Select("story_id, COUNT(*) AS total").
			Group("story_id")
		db = db.Select("stories.*").
			Joins("LEFT JOIN (?) AS bc ON bc.story_id = stories.id", counts).
			Order("COALESCE(bc.total, 0) DESC").
			Order("stories.created_at DESC")
	default:
		db = db.Order("stories.created_at DESC")
	}

	var list []models.StoryModel
	err := db.Preload("User").Preload("Category").
		Offset(q.Offset()).Limit(q.Size).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *GormRepository) Similar(ctx context.Context, story *models.StoryModel, limit int) ([]models.StoryModel, error) {
	var list []models.StoryModel
	err := r.populated(ctx).
		Where("category_id = ? AND id <> ?", story.CategoryID, story.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
