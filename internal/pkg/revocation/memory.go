package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/storyshare/core/internal/pkg/clock"
)

// MemoryLedger is a mutex-guarded in-process ledger. It only works for a
// single server process.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	clock   clock.Clock
}

func NewMemoryLedger(clk clock.Clock) *MemoryLedger {
	if clk == nil {
		clk = clock.Real()
	}
	return &MemoryLedger{entries: make(map[string]time.Time), clock: clk}
}

func (l *MemoryLedger) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := Key(token)
	until := l.clock.Now().Add(ttl)

	l.mu.Lock()
	if cur, ok := l.entries[key]; !ok || until.After(cur) {
		l.entries[key] = until
	}
	l.mu.Unlock()
	return nil
}

func (l *MemoryLedger) IsRevoked(_ context.Context, token string) (bool, error) {
	key := Key(token)
	now := l.clock.Now()

	l.mu.RLock()
	until, ok := l.entries[key]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if now.Before(until) {
		return true, nil
	}

	l.mu.Lock()
	if cur, still := l.entries[key]; still && !now.Before(cur) {
		delete(l.entries, key)
	}
	l.mu.Unlock()
	return false, nil
}

// Sweep drops every expired entry and returns how many were removed.
func (l *MemoryLedger) Sweep() int {
	now := l.clock.Now()
	removed := 0

	l.mu.Lock()
	for k, until := range l.entries {
		if !now.Before(until) {
			delete(l.entries, k)
			removed++
		}
	}
	l.mu.Unlock()
	return removed
}

// Len returns the number of stored entries, expired or not.
func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Run sweeps on every tick until ctx is cancelled.
func (l *MemoryLedger) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
