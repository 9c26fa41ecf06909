package bookmark

import (
	"context"
	"strings"
	"testing"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/bookmarks"
	"github.com/storyshare/core/internal/repositories/categories"
	"github.com/storyshare/core/internal/repositories/stories"
	"github.com/storyshare/core/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
	marks   *bookmarks.MemoryRepository
	stories *stories.MemoryRepository
	alice   string
	bob     string
	story   *models.StoryModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	ur := users.NewMemoryRepository()
	alice := &models.UserModel{Name: "Alice", Username: "alice_01", Email: "alice@x.com"}
	bob := &models.UserModel{Name: "Bob", Username: "bobby_01", Email: "bob@x.com"}
	require.NoError(t, ur.Create(ctx, alice))
	require.NoError(t, ur.Create(ctx, bob))

	cr := categories.NewMemoryRepository()
	require.NoError(t, cr.SeedIfEmpty(ctx, []string{"comedy"}))
	cats, err := cr.List(ctx)
	require.NoError(t, err)

	br := bookmarks.NewMemoryRepository()
	sr := stories.NewMemoryRepository(ur, cr, br)
	st := &models.StoryModel{
		Title:      "Funny",
		Content:    strings.Repeat("ha", 100),
		CategoryID: cats[0].ID,
		UserID:     bob.ID,
		Images:     models.StringArray{"stories/a.png", "stories/b.png"},
	}
	require.NoError(t, sr.Create(ctx, st))

	return &fixture{
		svc:     NewService(br, sr, store, nil),
		marks:   br,
		stories: sr,
		alice:   alice.ID,
		bob:     bob.ID,
		story:   st,
	}
}

func TestToggle_TwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	on, err := f.svc.Toggle(ctx, f.alice, f.story.ID)
	require.NoError(t, err)
	assert.True(t, on)
	_, err = f.marks.Find(ctx, f.alice, f.story.ID)
	require.NoError(t, err)

	on, err = f.svc.Toggle(ctx, f.alice, f.story.ID)
	require.NoError(t, err)
	assert.False(t, on)
	_, err = f.marks.Find(ctx, f.alice, f.story.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestToggle_MissingStory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Toggle(ctx, f.alice, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.svc.Toggle(ctx, f.alice, " ")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, f.stories.Delete(ctx, f.story.ID))
	_, err = f.svc.Toggle(ctx, f.alice, f.story.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// blindFind hides existing rows from Find, as a concurrent request that has
// not yet seen the other's insert would.
type blindFind struct {
	*bookmarks.MemoryRepository
}

func (blindFind) Find(context.Context, string, string) (*models.BookmarkModel, error) {
	return nil, repositories.ErrNotFound
}

func TestToggle_DuplicateInsertRemoves(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.marks.Create(ctx, &models.BookmarkModel{UserID: f.alice, StoryID: f.story.ID}))

	svc := NewService(blindFind{f.marks}, f.stories, f.svc.store, nil)
	on, err := svc.Toggle(ctx, f.alice, f.story.ID)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = f.marks.Find(ctx, f.alice, f.story.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestList_DenormalisedSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Toggle(ctx, f.alice, f.story.ID)
	require.NoError(t, err)

	list, err := f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, f.story.ID, got.StoryID)
	assert.Equal(t, "Funny", got.Title)
	assert.Equal(t, "/storage/stories/a.png", got.Image)
	assert.Equal(t, "comedy", got.Category)
	assert.Equal(t, "Bob", got.Author)
	assert.True(t, strings.HasSuffix(got.Excerpt, "..."))

	require.NoError(t, f.stories.Delete(ctx, f.story.ID))
	list, err = f.svc.List(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Toggle(ctx, f.alice, f.story.ID)
	require.NoError(t, err)
	b, err := f.marks.Find(ctx, f.alice, f.story.ID)
	require.NoError(t, err)

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(f.svc.Delete(ctx, f.bob, b.ID)))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(f.svc.Delete(ctx, f.alice, "missing")))
	require.NoError(t, f.svc.Delete(ctx, f.alice, b.ID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(f.svc.Delete(ctx, f.alice, b.ID)))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short"))
	long := strings.Repeat("é", 200)
	assert.Equal(t, strings.Repeat("é", excerptRunes)+"...", excerpt(long))
}
