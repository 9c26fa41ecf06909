package user

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/hasher"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc   *Service
	users *users.MemoryRepository
	store *storage.LocalStore
	h     hasher.Hasher
	ann   *models.UserModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "/storage")
	require.NoError(t, err)
	repo := users.NewMemoryRepository()
	h := hasher.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("abc12345!")
	require.NoError(t, err)
	ann := &models.UserModel{Name: "Ann", Username: "ann12345", Email: "a@x.com", Password: hash}
	require.NoError(t, repo.Create(context.Background(), ann))
	require.NoError(t, repo.Create(context.Background(), &models.UserModel{Name: "Bob", Username: "bob12345", Email: "b@x.com", Password: hash}))

	return &fixture{svc: NewService(repo, h, store, nil), users: repo, store: store, h: h, ann: ann}
}

func ptr(s string) *string { return &s }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (f *fixture) exists(key string) bool {
	_, err := os.Stat(filepath.Join(f.store.Root(), filepath.FromSlash(key)))
	return err == nil
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{Bio: ptr("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", u.Bio)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann12345", u.Username)
}

func TestUpdate_UsernameRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{Username: ptr("abc")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.svc.Update(ctx, f.ann.ID, &UpdateDTO{Username: ptr("bob12345")})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	u, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{Username: ptr("ann12345")})
	require.NoError(t, err)
	assert.Equal(t, "ann12345", u.Username)
}

func TestUpdate_Password(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{OldPassword: ptr("wrong123!"), NewPassword: ptr("next1234!")})
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, msgOldPasswordWrong, apperr.From(err).Message)

	_, err = f.svc.Update(ctx, f.ann.ID, &UpdateDTO{OldPassword: ptr("abc12345!"), NewPassword: ptr("weakpass")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.svc.Update(ctx, f.ann.ID, &UpdateDTO{OldPassword: ptr("abc12345!"), NewPassword: ptr("abc12345!")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.svc.Update(ctx, f.ann.ID, &UpdateDTO{OldPassword: ptr("abc12345!"), NewPassword: ptr("next1234!")})
	require.NoError(t, err)
	stored, err := f.users.GetByID(ctx, f.ann.ID)
	require.NoError(t, err)
	assert.True(t, f.h.Compare(stored.Password, "next1234!"))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.svc.ChangePassword(ctx, f.ann.ID, &ChangePasswordDTO{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = f.svc.ChangePassword(ctx, f.ann.ID, &ChangePasswordDTO{OldPassword: "nope1234!", Password: "next1234!"})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	require.NoError(t, f.svc.ChangePassword(ctx, f.ann.ID, &ChangePasswordDTO{OldPassword: "abc12345!", Password: "next1234!"}))
	stored, err := f.users.GetByID(ctx, f.ann.ID)
	require.NoError(t, err)
	assert.True(t, f.h.Compare(stored.Password, "next1234!"))
}

func TestUpdateProfile_IgnoresNil(t *testing.T) {
	f := newFixture(t)
	u, err := f.svc.UpdateProfile(context.Background(), f.ann.ID, &UpdateProfileDTO{Name: ptr("Annie")})
	require.NoError(t, err)
	assert.Equal(t, "Annie", u.Name)
	assert.Equal(t, "ann12345", u.Username)
}

func TestUpdatePicture_ReplacesPreviousObject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.svc.UpdatePicture(ctx, f.ann.ID, bytes.NewReader(pngBytes(t, 1024, 600)))
	require.NoError(t, err)
	first := u.Avatar
	require.NotEmpty(t, first)
	assert.True(t, f.exists(first))
	assert.Equal(t, "/storage/"+first, AvatarURL(f.store, first))

	u, err = f.svc.UpdatePicture(ctx, f.ann.ID, bytes.NewReader(pngBytes(t, 10, 10)))
	require.NoError(t, err)
	assert.NotEqual(t, first, u.Avatar)
	assert.True(t, f.exists(u.Avatar))
	assert.False(t, f.exists(first))

	cleared, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{Avatar: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.Avatar)
	assert.False(t, f.exists(u.Avatar))
}

func TestUpdate_RejectsAvatarValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Update(ctx, f.ann.ID, &UpdateDTO{
		Name:        ptr("Annie"),
		Avatar:      ptr("avatars/elsewhere.png"),
		OldPassword: ptr("abc12345!"),
		NewPassword: ptr("xyz12345!"),
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "avatar", apperr.From(err).Fields[0].Field)

	stored, err := f.users.GetByID(ctx, f.ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.Name)
	assert.Empty(t, stored.Avatar)
	assert.True(t, f.h.Compare(stored.Password, "abc12345!"))
}

func TestUpdatePicture_RejectsNonImage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdatePicture(context.Background(), f.ann.ID, bytes.NewReader([]byte("plain text, not an image")))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAvatarURL(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "", AvatarURL(f.store, ""))
	assert.Equal(t, "https://cdn/x.png", AvatarURL(f.store, "https://cdn/x.png"))
}
