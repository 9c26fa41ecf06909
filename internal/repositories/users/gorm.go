package users

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

func (r *GormRepository) Create(ctx context.Context, user *models.UserModel) error {
	return repositories.Translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, repositories.Translate(err)
	}
	return &u, nil
}

func (r *GormRepository) GetByLogin(ctx context.Context, login string) (*models.UserModel, error) {
	var u models.UserModel
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", login, login).
		First(&u).Error
	if err != nil {
		return nil, repositories.Translate(err)
	}
	return &u, nil
}

func (r *GormRepository) UsernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	return r.taken(ctx, "username", username, exceptID)
}

func (r *GormRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return r.taken(ctx, "email", email, exceptID)
}

func (r *GormRepository) taken(ctx context.Context, column, value, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.UserModel{}).Where(column+" = ?", value)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) Update(ctx context.Context, user *models.UserModel) error {
	err := r.db.WithContext(ctx).Model(user).Select("name", "username", "email", "password", "bio", "avatar").Updates(user).Error
	return repositories.Translate(err)
}
