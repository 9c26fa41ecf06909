// Package revocation keeps the short-lived denylist of logged-out tokens.
// Entries expire on their own once the underlying token would have expired,
// so the ledger never needs a cleanup job.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const keyPrefix = "jwt_blacklist:"

// Ledger records revoked tokens.
type Ledger interface {
	// Revoke marks token as revoked for at most ttl. ttl <= 0 is a no-op.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Key derives the storage key for a raw token. Only the digest is stored.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
