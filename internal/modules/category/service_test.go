package category

import (
	"context"
	"testing"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories/categories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := categories.NewMemoryRepository()
	svc := NewService(repo)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.SeedIfEmpty(ctx, models.DefaultCategories))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(models.DefaultCategories))
	assert.Equal(t, "comedy", items[0].Name)
	assert.NotEmpty(t, items[0].ID)
}
