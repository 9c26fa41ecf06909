package user

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/hasher"
	"github.com/storyshare/core/internal/pkg/imageproc"
	"github.com/storyshare/core/internal/pkg/storage"
	"github.com/storyshare/core/internal/pkg/validation"
	"github.com/storyshare/core/internal/repositories"
	"github.com/storyshare/core/internal/repositories/users"
	"go.uber.org/zap"
)

const (
	msgUsernameTaken     = "Username already exists"
	msgOldPasswordWrong  = "Old password is incorrect"
	msgPasswordUnchanged = "New password must be different from the old password"
)

type Service struct {
	users  users.Repository
	hasher hasher.Hasher
	store  storage.Store
	log    *zap.Logger
}

func NewService(users users.Repository, h hasher.Hasher, store storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, hasher: h, store: store, log: log}
}

func (s *Service) Store() storage.Store { return s.store }

func (s *Service) load(ctx context.Context, id string) (*models.UserModel, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id string) (*models.UserModel, error) {
	return s.load(ctx, id)
}

// Update applies a partial change to the caller's own account.
func (s *Service) Update(ctx context.Context, userID string, dto *UpdateDTO) (*models.UserModel, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	s.applyProfile(v, u, dto.Name, dto.Username, dto.Bio)
	if dto.Avatar != nil {
		v.Check(strings.TrimSpace(*dto.Avatar) == "", "avatar", "The avatar can only be cleared here, upload a new one with POST /user/update-picture")
	}

	changePassword := dto.NewPassword != nil && *dto.NewPassword != ""
	if changePassword {
		old := ""
		if dto.OldPassword != nil {
			old = *dto.OldPassword
		}
		v.Required("old_password", "Old password", old)
		v.Password("new_password", *dto.NewPassword)
		if v.Valid() {
			if err := s.setPassword(u, old, *dto.NewPassword); err != nil {
				return nil, err
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.checkUsername(ctx, u); err != nil {
		return nil, err
	}

	var stale string
	if dto.Avatar != nil && strings.TrimSpace(*dto.Avatar) == "" {
		stale, u.Avatar = u.Avatar, ""
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	s.dropBlob(ctx, stale)
	return u, nil
}

// UpdateProfile changes name, username and bio only.
func (s *Service) UpdateProfile(ctx context.Context, userID string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := validation.New()
	s.applyProfile(v, u, dto.Name, dto.Username, dto.Bio)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.checkUsername(ctx, u); err != nil {
		return nil, err
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, userID string, dto *ChangePasswordDTO) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	v := validation.New().
		Required("old_password", "Old password", dto.OldPassword).
		Required("password", "Password", dto.Password).
		Password("password", dto.Password)
	if err := v.Err(); err != nil {
		return err
	}
	if err := s.setPassword(u, dto.OldPassword, dto.Password); err != nil {
		return err
	}
	return s.save(ctx, u)
}

// UpdatePicture stores a new avatar and deletes the previous object once the
// user row points at the new one.
func (s *Service) UpdatePicture(ctx context.Context, userID string, r io.Reader) (*models.UserModel, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	img, err := imageproc.Read(r, imageproc.Avatar)
	if err != nil {
		return nil, imageError("avatar", err)
	}

	key := storage.NewKey(avatarPrefix, img.Ext)
	if err := s.store.Put(ctx, key, img.Body, img.ContentType); err != nil {
		return nil, apperr.Internal(err)
	}

	stale := u.Avatar
	u.Avatar = key
	if err := s.save(ctx, u); err != nil {
		s.dropBlob(ctx, key)
		return nil, err
	}
	s.dropBlob(ctx, stale)
	return u, nil
}

func (s *Service) applyProfile(v *validation.Result, u *models.UserModel, name, username, bio *string) {
	if name != nil {
		n := strings.TrimSpace(*name)
		v.Required("name", "Name", n).MaxLen("name", "Name", n, 255)
		u.Name = n
	}
	if username != nil {
		un := strings.TrimSpace(*username)
		v.Required("username", "Username", un).Username("username", un)
		u.Username = un
	}
	if bio != nil {
		u.Bio = *bio
	}
}

func (s *Service) setPassword(u *models.UserModel, old, next string) error {
	if !s.hasher.Compare(u.Password, old) {
		return apperr.BadRequest(msgOldPasswordWrong)
	}
	if old == next {
		return apperr.Validation(apperr.FieldError{Field: "password", Message: msgPasswordUnchanged})
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperr.Internal(err)
	}
	u.Password = hash
	return nil
}

func (s *Service) checkUsername(ctx context.Context, u *models.UserModel) error {
	taken, err := s.users.UsernameTaken(ctx, u.Username, u.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflict(apperr.FieldError{Field: "username", Message: msgUsernameTaken})
	}
	return nil
}

func (s *Service) save(ctx context.Context, u *models.UserModel) error {
	err := s.users.Update(ctx, u)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrDuplicate):
		return apperr.Conflict(apperr.FieldError{Field: "username", Message: msgUsernameTaken})
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound("User")
	default:
		return apperr.Internal(err)
	}
}

// dropBlob removes a stored object, logging failures. External URLs are left alone.
func (s *Service) dropBlob(ctx context.Context, key string) {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("delete avatar failed", zap.String("key", key), zap.Error(err))
	}
}

func imageError(field string, err error) error {
	switch {
	case errors.Is(err, imageproc.ErrTooLarge), errors.Is(err, imageproc.ErrUnsupported), errors.Is(err, imageproc.ErrEmpty):
		return apperr.Validation(apperr.FieldError{Field: field, Message: err.Error()})
	default:
		return apperr.Internal(err)
	}
}
