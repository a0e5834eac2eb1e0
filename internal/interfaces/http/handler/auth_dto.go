package handler

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse is the authenticated user's profile in auth responses
type AuthUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
	Permissions []string   `json:"permissions"`
	RoleIDs     []string   `json:"role_ids"`
}

// LoginResponse is the login response payload
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenRequest is the token refresh request payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse is the token refresh response payload
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// LogoutResponse is the logout response payload
type LogoutResponse struct {
	Message string `json:"message"`
}

// ChangePasswordRequest is the password change request payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ForceLogoutRequest is the force logout request payload
type ForceLogoutRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
