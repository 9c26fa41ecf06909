package bookmarks

import (
	"context"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Find(ctx context.Context, userID, storyID string) (*models.BookmarkModel, error) {
	var b models.BookmarkModel
	err := r.db.WithContext(ctx).First(&b, "user_id = ? AND story_id = ?", userID, storyID).Error
	if err != nil {
		return nil, repositories.Translate(err)
	}
	return &b, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.BookmarkModel, error) {
	var b models.BookmarkModel
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, repositories.Translate(err)
	}
	return &b, nil
}

func (r *GormRepository) Create(ctx context.Context, b *models.BookmarkModel) error {
	return repositories.Translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.BookmarkModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeletePair(ctx context.Context, userID, storyID string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.BookmarkModel{}, "user_id = ? AND story_id = ?", userID, storyID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) ListByUser(ctx context.Context, userID string) ([]models.BookmarkModel, error) {
	var list []models.BookmarkModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepository) CountByStories(ctx context.Context, storyIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(storyIDs))
	if len(storyIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		StoryID string
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&models.BookmarkModel{}).
		Select("story_id, COUNT(*) AS total").
		Where("story_id IN ?", storyIDs).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.StoryID] = row.Total
	}
	return out, nil
}

func (r *GormRepository) BookmarkedBy(ctx context.Context, userID string, storyIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(storyIDs))
	if userID == "" || len(storyIDs) == 0 {
		return out, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.BookmarkModel{}).
		Where("user_id = ? AND story_id IN ?", userID, storyIDs).
		Pluck("story_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
