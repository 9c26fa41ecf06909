package revocation

import (
	"context"
	"fmt"
	"time"

	pkgredis "github.com/storyshare/core/internal/pkg/redis"
)

// RedisLedger stores revocations as expiring redis keys. Redis provides
// atomicity, so many server processes can share one ledger.
type RedisLedger struct {
	rc *pkgredis.Client
}

func NewRedisLedger(rc *pkgredis.Client) *RedisLedger { return &RedisLedger{rc: rc} }

func (l *RedisLedger) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.rc.Set(ctx, Key(token), "1", ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (l *RedisLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	ok, err := l.rc.Exists(ctx, Key(token))
	if err != nil {
		return false, fmt.Errorf("lookup revoked token: %w", err)
	}
	return ok, nil
}
