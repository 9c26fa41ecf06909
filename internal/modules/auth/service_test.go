package auth

import (
	"context"
	"testing"
	"time"

	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/clock"
	"github.com/storyshare/core/internal/pkg/hasher"
	"github.com/storyshare/core/internal/pkg/jwt"
	"github.com/storyshare/core/internal/pkg/revocation"
	"github.com/storyshare/core/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc    *Service
	users  *users.MemoryRepository
	tokens *jwt.Service
	ledger *revocation.MemoryLedger
	clk    *clock.Fixed
}

func newFixture() *fixture {
	clk := clock.NewFixed(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := users.NewMemoryRepository()
	tokens := jwt.NewService("secret", time.Hour, clk)
	ledger := revocation.NewMemoryLedger(clk)
	return &fixture{
		svc:    NewService(repo, hasher.NewBcrypt(bcrypt.MinCost), tokens, ledger, nil),
		users:  repo,
		tokens: tokens,
		ledger: ledger,
		clk:    clk,
	}
}

func ann() *RegisterDTO {
	return &RegisterDTO{Name: "Ann", Username: "ann12345", Email: "a@x.com", Password: "abc12345!"}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	ae := apperr.From(err)
	require.NotNil(t, ae)
	out := map[string]string{}
	for _, f := range ae.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestRegister_HashesPassword(t *testing.T) {
	f := newFixture()
	u, err := f.svc.Register(context.Background(), ann())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "abc12345!", u.Password)

	stored, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "abc12345!", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("abc12345!")))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), &RegisterDTO{
		Username: "abc",
		Email:    "not-an-email",
		Password: "abcdefgh",
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	fields := fieldsOf(t, err)
	assert.Equal(t, "Name is required", fields["name"])
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegister_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.svc.Register(ctx, ann())
	require.NoError(t, err)

	dup := ann()
	dup.Email = "A@X.com"
	_, err = f.svc.Register(ctx, dup)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	fields := fieldsOf(t, err)
	assert.Equal(t, msgUsernameTaken, fields["username"])
	assert.Equal(t, msgEmailTaken, fields["email"])
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u, err := f.svc.Register(ctx, ann())
	require.NoError(t, err)

	for _, login := range []string{"a@x.com", "ann12345"} {
		issued, err := f.svc.Login(ctx, &LoginDTO{EmailOrUsername: login, Password: "abc12345!"})
		require.NoError(t, err, login)
		claims, err := f.tokens.Verify(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, f.clk.Now().Add(time.Hour), issued.ExpiresAt)
	}
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.svc.Register(ctx, ann())
	require.NoError(t, err)

	_, wrongPass := f.svc.Login(ctx, &LoginDTO{EmailOrUsername: "a@x.com", Password: "nope12345!"})
	_, noUser := f.svc.Login(ctx, &LoginDTO{EmailOrUsername: "ghost@x.com", Password: "abc12345!"})
	for _, err := range []error{wrongPass, noUser} {
		require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.Equal(t, "Invalid credentials", apperr.From(err).Message)
	}

	_, err = f.svc.Login(ctx, &LoginDTO{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.svc.Register(ctx, ann())
	require.NoError(t, err)
	issued, err := f.svc.Login(ctx, &LoginDTO{EmailOrUsername: "ann12345", Password: "abc12345!"})
	require.NoError(t, err)
	claims, err := f.tokens.Verify(issued.Token)
	require.NoError(t, err)

	f.clk.Advance(20 * time.Minute)
	require.NoError(t, f.svc.Logout(ctx, issued.Token, claims))

	revoked, err := f.ledger.IsRevoked(ctx, issued.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	f.clk.Advance(40*time.Minute + time.Second)
	revoked, err = f.ledger.IsRevoked(ctx, issued.Token)
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Zero(t, f.ledger.Len())
}
