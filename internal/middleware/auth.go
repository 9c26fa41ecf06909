package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/jwt"
	"github.com/storyshare/core/internal/pkg/response"
	"github.com/storyshare/core/internal/pkg/revocation"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/users"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
	ContextKeyToken  = "token"
	ContextKeyClaims = "claims"
)

var (
	ErrMissingToken = errors.New("token not provided")
	ErrBlacklisted  = errors.New("token revoked")
	ErrUserNotFound = errors.New("token user no longer exists")
)

// TokenVerifier checks a raw token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*jwt.Claims, error)
}

// Identity is what the gate attaches to an authenticated request.
type Identity struct {
	User   *models.UserModel
	Token  string
	Claims *jwt.Claims
}

// Gate authenticates bearer tokens against the revocation ledger, the token
// signature and the credential store, in that order.
type Gate struct {
	tokens TokenVerifier
	ledger revocation.Ledger
	users  users.Repository
	log    *zap.Logger
}

func NewGate(tokens TokenVerifier, ledger revocation.Ledger, users users.Repository, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{tokens: tokens, ledger: ledger, users: users, log: log}
}

// Authenticate resolves raw to an identity. Failures are apperr values:
// a missing token is a bad request, everything else is unauthorized except
// store outages, which are internal.
func (g *Gate) Authenticate(ctx context.Context, raw string) (*Identity, error) {
	token := NormalizeToken(raw)
	if token == "" {
		return nil, apperr.BadRequest("Token not provided")
	}

	revoked, err := g.ledger.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if revoked {
		return nil, apperr.Unauthorized(ErrBlacklisted)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized(err)
	}

	user, err := g.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Unauthorized(ErrUserNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Identity{User: user, Token: token, Claims: claims}, nil
}

// Require rejects the request unless it carries a valid token.
func (g *Gate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if apperr.Is(err, apperr.KindUnauthorized) {
				g.log.Debug("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			}
			response.Error(c, g.log, err)
			return
		}
		attach(c, id)
		c.Next()
	}
}

// Optional attaches the identity when a valid token is present and lets
// anonymous or invalid requests through unchanged.
func (g *Gate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization")); err == nil {
			attach(c, id)
		}
		c.Next()
	}
}

func attach(c *gin.Context, id *Identity) {
	c.Set(ContextKeyUserID, id.User.ID)
	c.Set(ContextKeyUser, id.User)
	c.Set(ContextKeyToken, id.Token)
	c.Set(ContextKeyClaims, id.Claims)
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// CurrentUser returns the account the gate loaded, nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	u, _ := v.(*models.UserModel)
	return u
}

// CurrentToken returns the raw bearer token the request was authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}

func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, _ := c.Get(ContextKeyClaims)
	claims, _ := v.(*jwt.Claims)
	return claims
}

// IsAuthenticated returns true if the gate resolved a user for the request.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	if strings.EqualFold(token, "bearer") {
		return ""
	}
	return token
}
