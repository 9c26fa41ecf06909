package auth

import (
	"errors"
	"time"

	"github.com/storyshare/core/internal/models"
)

type RegisterDTO struct {
	Name     string `json:"name"     form:"name"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginDTO struct {
	EmailOrUsername string `json:"email_or_username" form:"email_or_username"`
	Password        string `json:"password"          form:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type registeredResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toRegistered(u *models.UserModel) registeredResponse {
	return registeredResponse{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}

var errInvalidCredentials = errors.New("invalid credentials")

const (
	msgUsernameTaken = "Username already exists"
	msgEmailTaken    = "Email already exists"
)
