package categories

import (
	"context"
	"strings"
	"testing"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepository_SeedIfEmptyCountsSoftDeleted(t *testing.T) {
	db, rec := repotest.DryRun(t)
	r := NewGormRepository(db)

	require.NoError(t, r.SeedIfEmpty(context.Background(), models.DefaultCategories))

	count := rec.Find("SELECT count(*) FROM `categories`")
	require.NotEmpty(t, count, rec.Statements())
	assert.NotContains(t, count, "deleted_at")

	insert := rec.Find("INSERT INTO `categories`")
	require.NotEmpty(t, insert, rec.Statements())
	for _, name := range models.DefaultCategories {
		assert.Contains(t, insert, "'"+name+"'")
	}
	assert.Equal(t, 1, strings.Count(strings.Join(rec.Statements(), "\n"), "INSERT INTO"))
}

func TestGormRepository_ListSkipsSoftDeleted(t *testing.T) {
	db, rec := repotest.DryRun(t)
	_, err := NewGormRepository(db).List(context.Background())
	require.NoError(t, err)

	q := rec.Find("FROM `categories`")
	assert.Contains(t, q, "`categories`.`deleted_at` IS NULL")
	assert.Contains(t, q, "ORDER BY name ASC")
}
