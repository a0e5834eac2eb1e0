package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/identity"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/dto"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	metrics     *telemetry.BusinessMetrics
	loginGuard  gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler. metrics may be nil when
// telemetry is disabled.
func NewAuthHandler(authService *identity.AuthService, metrics *telemetry.BusinessMetrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     metrics,
	}
}

// SetLoginGuard installs a middleware that runs before the login endpoint,
// typically a per-username rate limiter.
func (h *AuthHandler) SetLoginGuard(guard gin.HandlerFunc) {
	h.loginGuard = guard
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		if h.loginGuard != nil {
			auth.POST("/login", h.loginGuard, h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.GetCurrentUser)
		auth.POST("/change-password", h.ChangePassword)
		auth.POST("/force-logout/:id", middleware.RequirePermission("user:force-logout"), h.ForceLogout)
	}
}

// Login authenticates a user with username and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLogin(c.Request.Context())
	}

	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: toAuthUserResponse(result.User),
	})
}

// RefreshToken issues a new token pair from a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	// The auth service extracts user info from the refresh token itself
	result, err := h.authService.RefreshToken(c.Request.Context(), identity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RefreshTokenResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
	})
}

// Logout invalidates the current session's access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	err = h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user's profile and permissions
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), identity.GetCurrentUserInput{
		UserID: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	user := toAuthUserResponse(result.User)
	user.Permissions = result.Permissions
	h.Success(c, user)
}

// ChangePassword changes the authenticated user's password. All existing
// sessions are revoked by the service.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	err = h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Password changed, please log in again"})
}

// ForceLogout revokes all sessions of the target user
func (h *AuthHandler) ForceLogout(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	targetID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req ForceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, "Invalid request body")
		return
	}

	err = h.authService.ForceLogout(c.Request.Context(), identity.ForceLogoutInput{
		AdminUserID:  adminID,
		TargetUserID: targetID,
		Reason:       req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "All sessions revoked"})
}

func toAuthUserResponse(user identity.UserInfo) AuthUserResponse {
	roleIDs := make([]string, len(user.RoleIDs))
	for i, rid := range user.RoleIDs {
		roleIDs[i] = rid.String()
	}
	return AuthUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		EmployeeID:  user.EmployeeID,
		Permissions: user.Permissions,
		RoleIDs:     roleIDs,
	}
}
