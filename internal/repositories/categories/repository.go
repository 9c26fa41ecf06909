package categories

import (
	"context"

	"github.com/storyshare/core/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.CategoryModel, error)
	GetByID(ctx context.Context, id string) (*models.CategoryModel, error)
	// SeedIfEmpty creates names only when no category row exists yet.
	SeedIfEmpty(ctx context.Context, names []string) error
}
