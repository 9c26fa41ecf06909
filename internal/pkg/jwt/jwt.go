package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storyshare/core/internal/pkg/clock"
)

// DefaultSecret is only acceptable outside production.
const DefaultSecret = "storyshare-secret-change-me"

const DefaultTTL = 24 * time.Hour

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Issued is a freshly signed token.
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

// Service signs and verifies bearer tokens. It holds no state besides the
// signing secret, so it is safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewService(secret string, ttl time.Duration, clk clock.Clock) *Service {
	if strings.TrimSpace(secret) == "" {
		secret = DefaultSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Service{secret: []byte(secret), ttl: ttl, clock: clk}
}

// TTL returns the validity window of issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed token for the given user ID.
func (s *Service) Issue(userID string) (Issued, error) {
	if userID == "" {
		return Issued{}, fmt.Errorf("issue token: empty user id")
	}
	now := s.clock.Now()
	exp := now.Add(s.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign token: %w", err)
	}
	// NumericDate truncates to seconds; report what the token actually carries.
	return Issued{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature and expiry and returns the claims.
func (s *Service) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenMalformed
	}
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.clock.Now),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Remaining returns how long the token stays valid, never negative.
func (s *Service) Remaining(c *Claims) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(s.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}
