package categories

import (
	"context"
	"errors"

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

func (r *GormRepository) List(ctx context.Context) ([]models.CategoryModel, error) {
	var list []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.CategoryModel, error) {
	var c models.CategoryModel
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, repositories.Translate(err)
	}
	return &c, nil
}

// SeedIfEmpty counts soft-deleted rows too, so a removed default is not
// brought back on the next boot.
func (r *GormRepository) SeedIfEmpty(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	var n int64
	if err := db.Unscoped().Model(&models.CategoryModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rows := make([]models.CategoryModel, len(names))
	for i, name := range names {
		rows[i].Name = name
	}
	err := repositories.Translate(db.Create(&rows).Error)
	if errors.Is(err, repositories.ErrDuplicate) {
		// another instance seeded first
		return nil
	}
	return err
}
