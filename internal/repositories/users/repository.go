package users

import (
	"context"

	"github.com/storyshare/core/internal/models"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user *models.UserModel) error
	GetByID(ctx context.Context, id string) (*models.UserModel, error)
	// GetByLogin matches either the email or the username.
	GetByLogin(ctx context.Context, login string) (*models.UserModel, error)
	UsernameTaken(ctx context.Context, username, exceptID string) (bool, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	Update(ctx context.Context, user *models.UserModel) error
}
