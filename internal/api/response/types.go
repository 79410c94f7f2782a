package response

import (
	"github.com/goodluckfit/fitauth/internal/model"
)

// User represents a user's public fields in API responses.
// The password hash is never exposed.
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Role:     string(u.Role),
		Height:   u.Height,
		Weight:   u.Weight,
	}
}

// LoginData is the data payload for a successful login
type LoginData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenData is the data payload for a token refresh
type TokenData struct {
	Token string `json:"token"`
}
