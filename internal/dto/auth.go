package dto

import "time"

// LoginRequest defines the payload for password authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
