// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"eshika-chat/internal/services"
	"eshika-chat/internal/transport/httpdto"
	"eshika-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles user registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req httpdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(services.ErrMissingFields.Msg, "INVALID_REQUEST"))
		return
	}

	user, err := h.service.Signup(c.Request.Context(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{Success: true, User: user})
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Email and password are required", "INVALID_REQUEST"))
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{Success: true, User: user})
}

// UpdateAccount changes username and/or password after checking the old password.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	var req httpdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	ctx := logger.WithUserEmail(c.Request.Context(), req.Email)
	user, err := h.service.UpdateAccount(ctx, services.UpdateAccountInput{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewUsername: req.NewUsername,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Success: true,
		User:    user,
		Message: "Account updated successfully",
	})
}
