package auth

import (
	"time"

	"aniexo/internal/domain/entity"
)

type registerRequest struct {
	Username string `json:"username" example:"spike"`
	Email    string `json:"email" example:"spike@bebop.example"`
	Password string `json:"password" example:"see-you-space-cowboy"`
}

type loginRequest struct {
	Username string `json:"username" example:"spike"`
	Password string `json:"password" example:"see-you-space-cowboy"`
}

// UserDTO is the public view of an account. The password hash is never exposed.
type UserDTO struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"spike"`
	Email     string    `json:"email,omitempty" example:"spike@bebop.example"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionDTO is returned by register and login.
type SessionDTO struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}
