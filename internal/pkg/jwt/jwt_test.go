package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/storyshare/core/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestIssueAndVerify(t *testing.T) {
	clk := clock.NewFixed(epoch)
	svc := NewService("k", time.Hour, clk)

	issued, err := svc.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(time.Hour), issued.ExpiresAt)

	claims, err := svc.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, svc.Remaining(claims))
}

func TestVerify_ValidUntilTTLThenExpired(t *testing.T) {
	clk := clock.NewFixed(epoch)
	svc := NewService("k", time.Hour, clk)

	issued, err := svc.Issue("user-1")
	require.NoError(t, err)

	clk.Advance(59 * time.Minute)
	_, err = svc.Verify(issued.Token)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	_, err = svc.Verify(issued.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	clk := clock.NewFixed(epoch)
	issued, err := NewService("right", time.Hour, clk).Issue("u")
	require.NoError(t, err)

	_, err = NewService("wrong", time.Hour, clk).Verify(issued.Token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewService("k", time.Hour, clock.NewFixed(epoch))
	for _, raw := range []string{"", "   ", "not.a.jwt", "abc"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "raw=%q", raw)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewService("k", time.Hour, clock.NewFixed(epoch))
	claims := Claims{
		UserID: "u",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(epoch.Add(time.Hour)),
		},
	}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := NewService("k", time.Hour, clock.NewFixed(epoch))
	issued, err := svc.Issue("u")
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	_, err = svc.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestRemaining_NeverNegative(t *testing.T) {
	clk := clock.NewFixed(epoch)
	svc := NewService("k", time.Minute, clk)
	issued, err := svc.Issue("u")
	require.NoError(t, err)
	claims, err := svc.Verify(issued.Token)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	assert.Equal(t, time.Duration(0), svc.Remaining(claims))
	assert.Equal(t, time.Duration(0), svc.Remaining(nil))
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService("", 0, nil)
	assert.Equal(t, DefaultTTL, svc.TTL())
	assert.Equal(t, []byte(DefaultSecret), svc.secret)
}
