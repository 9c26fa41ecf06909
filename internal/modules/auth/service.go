package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/hasher"
	"github.com/storyshare/core/internal/pkg/jwt"
	"github.com/storyshare/core/internal/pkg/revocation"
	"github.com/storyshare/core/internal/pkg/validation"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/users"
	"go.uber.org/zap"
)

type Service struct {
	users  users.Repository
	hasher hasher.Hasher
	tokens *jwt.Service
	ledger revocation.Ledger
	log    *zap.Logger
}

func NewService(users users.Repository, h hasher.Hasher, tokens *jwt.Service, ledger revocation.Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, hasher: h, tokens: tokens, ledger: ledger, log: log}
}

func validateRegister(dto *RegisterDTO) error {
	v := validation.New()
	v.Required("name", "Name", dto.Name).MaxLen("name", "Name", dto.Name, 255)
	v.Required("username", "Username", dto.Username).Username("username", dto.Username)
	v.Required("email", "Email", dto.Email).Email("email", dto.Email)
	v.Required("password", "Password", dto.Password).Password("password", dto.Password)
	return v.Err()
}

// Register validates dto, checks username and email uniqueness and stores the
// user with a hashed password.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Username = strings.TrimSpace(dto.Username)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if err := validateRegister(dto); err != nil {
		return nil, err
	}

	var conflicts []apperr.FieldError
	taken, err := s.users.UsernameTaken(ctx, dto.Username, "")
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		conflicts = append(conflicts, apperr.FieldError{Field: "username", Message: msgUsernameTaken})
	}
	if taken, err = s.users.EmailTaken(ctx, dto.Email, ""); err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		conflicts = append(conflicts, apperr.FieldError{Field: "email", Message: msgEmailTaken})
	}
	if len(conflicts) > 0 {
		return nil, apperr.Conflict(conflicts...)
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &models.UserModel{
		Name:     dto.Name,
		Username: dto.Username,
		Email:    dto.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, apperr.Conflict(apperr.FieldError{Field: "username", Message: msgUsernameTaken})
		}
		return nil, apperr.Internal(err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login checks the credentials and issues a token. Unknown accounts and wrong
// passwords fail identically.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (jwt.Issued, error) {
	login := strings.TrimSpace(dto.EmailOrUsername)
	v := validation.New().
		Required("email_or_username", "Email or username", login).
		Required("password", "Password", dto.Password)
	if err := v.Err(); err != nil {
		return jwt.Issued{}, err
	}
	if validation.IsEmail(login) {
		login = strings.ToLower(login)
	}

	u, err := s.users.GetByLogin(ctx, login)
	if errors.Is(err, repositories.ErrNotFound) {
		return jwt.Issued{}, invalidCredentials()
	}
	if err != nil {
		return jwt.Issued{}, apperr.Internal(err)
	}
	if !s.hasher.Compare(u.Password, dto.Password) {
		return jwt.Issued{}, invalidCredentials()
	}

	issued, err := s.tokens.Issue(u.ID)
	if err != nil {
		return jwt.Issued{}, apperr.Internal(err)
	}
	return issued, nil
}

// Logout revokes token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string, claims *jwt.Claims) error {
	if err := s.ledger.Revoke(ctx, token, s.tokens.Remaining(claims)); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func invalidCredentials() error {
	return &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Invalid credentials", Err: errInvalidCredentials}
}
