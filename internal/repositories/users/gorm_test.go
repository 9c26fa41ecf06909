package users

import (
	"context"
	"testing"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepository_UpdateWritesProfileColumns(t *testing.T) {
	db, rec := repotest.DryRun(t)
	u := &models.UserModel{Name: "Ann", Username: "ann12345", Email: "a@x.com", Password: "hash", Bio: ""}
	u.ID = "u1"

	require.NoError(t, NewGormRepository(db).Update(context.Background(), u))

	q := rec.Find("UPDATE `users` SET")
	require.NotEmpty(t, q, rec.Statements())
	// selected columns are written even when zero, so clearing bio works
	for _, col := range []string{"`name`='Ann'", "`username`='ann12345'", "`password`='hash'", "`bio`=''", "`avatar`=''"} {
		assert.Contains(t, q, col)
	}
	assert.NotContains(t, q, "`created_at`")
}

func TestGormRepository_GetByLoginMatchesEitherColumn(t *testing.T) {
	db, rec := repotest.DryRun(t)
	_, _ = NewGormRepository(db).GetByLogin(context.Background(), "ann12345")

	q := rec.Find("FROM `users`")
	assert.Contains(t, q, "email = 'ann12345' OR username = 'ann12345'")
	assert.Contains(t, q, "LIMIT 1")
}
