package user

import (
	"strings"
	"time"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/storage"
)

// UpdateDTO is a partial update; nil fields are left unchanged. Password
// changes need both OldPassword and NewPassword. An empty Avatar clears the
// current picture; any other Avatar value is rejected.
type UpdateDTO struct {
	Name        *string `json:"name"`
	Username    *string `json:"username"`
	Bio         *string `json:"bio"`
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
	Avatar      *string `json:"avatar"`
}

type UpdateProfileDTO struct {
	Name     *string `json:"name"     form:"name"`
	Username *string `json:"username" form:"username"`
	Bio      *string `json:"bio"      form:"bio"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" form:"old_password"`
	Password    string `json:"password"     form:"password"`
}

// Profile is the account as shown to its owner.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// AvatarURL renders a stored avatar key as a public address.
func AvatarURL(store storage.Store, key string) string {
	switch {
	case key == "":
		return ""
	case strings.HasPrefix(key, "http://"), strings.HasPrefix(key, "https://"):
		return key
	default:
		return store.URL(key)
	}
}

func toProfile(store storage.Store, u *models.UserModel) Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Avatar:    AvatarURL(store, u.Avatar),
		CreatedAt: u.CreatedAt,
	}
}

// toPublicProfile hides the email address.
func toPublicProfile(store storage.Store, u *models.UserModel) Profile {
	p := toProfile(store, u)
	p.Email = ""
	return p
}

const avatarPrefix = "avatars"

func missingFile(field, message string) error {
	return apperr.Validation(apperr.FieldError{Field: field, Message: message})
}
