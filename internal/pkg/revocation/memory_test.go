package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/storyshare/core/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_RevokeThenExpire(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	l := NewMemoryLedger(clk)

	revoked, err := l.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, l.Revoke(ctx, "tok", 10*time.Minute))

	for i := 0; i < 3; i++ {
		revoked, err = l.IsRevoked(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, revoked)
		clk.Advance(3 * time.Minute)
	}

	clk.Advance(time.Minute)
	revoked, err = l.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, 0, l.Len(), "expired entry is evicted on lookup")
}

func TestMemoryLedger_NonPositiveTTLIsNoop(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(clock.NewFixed(time.Now()))

	require.NoError(t, l.Revoke(ctx, "tok", 0))
	require.NoError(t, l.Revoke(ctx, "tok", -time.Second))
	assert.Equal(t, 0, l.Len())
}

func TestMemoryLedger_RevokeKeepsLongerExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Now())
	l := NewMemoryLedger(clk)

	require.NoError(t, l.Revoke(ctx, "tok", time.Hour))
	require.NoError(t, l.Revoke(ctx, "tok", time.Minute))

	clk.Advance(30 * time.Minute)
	revoked, err := l.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryLedger_Sweep(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Now())
	l := NewMemoryLedger(clk)

	require.NoError(t, l.Revoke(ctx, "short", time.Minute))
	require.NoError(t, l.Revoke(ctx, "long", time.Hour))
	clk.Advance(2 * time.Minute)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestMemoryLedger_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(clock.Real())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", i)
			_ = l.Revoke(ctx, tok, time.Hour)
			ok, err := l.IsRevoked(ctx, tok)
			assert.NoError(t, err)
			assert.True(t, ok)
			l.Sweep()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, l.Len())
}

func TestKey_DigestsToken(t *testing.T) {
	k := Key("secret-token")
	assert.NotContains(t, k, "secret-token")
	assert.Equal(t, k, Key("secret-token"))
	assert.NotEqual(t, k, Key("other"))
	assert.Len(t, k, len(keyPrefix)+64)
}
