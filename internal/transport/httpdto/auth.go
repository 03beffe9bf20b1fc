package httpdto

import "eshika-chat/internal/services"

// LoginRequest is used for POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest is used for POST /api/signup
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest is used for POST /api/account/update
type UpdateAccountRequest struct {
	Email       string `json:"email" binding:"required"`
	OldPassword string `json:"oldPassword"`
	NewUsername string `json:"newUsername,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// AuthResponse is returned by login and signup. The user never carries a password.
type AuthResponse struct {
	Success bool              `json:"success"`
	User    services.UserInfo `json:"user"`
	Message string            `json:"message,omitempty"`
}
