package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/middleware"
	"github.com/inkwell/blog-backend/internal/service"
	"github.com/inkwell/blog-backend/pkg/jwt"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest refresh token request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an author account and returns a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.RegisterRequest  true  "Registration payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Register(&req)
	if errors.Is(err, common.ErrUserAlreadyExists) {
		common.Fail(c, http.StatusConflict, "Email is already registered", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	common.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":          resp.User,
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by email and password and returns a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.Fail(c, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}
	if errors.Is(err, common.ErrAccountDisabled) {
		common.Fail(c, http.StatusUnauthorized, "User account is deactivated.", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	common.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":          resp.User,
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
	})
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchanges a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Refresh(req.RefreshToken)
	if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, jwt.ErrExpiredToken) {
		common.Fail(c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}
	if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrAccountDisabled) {
		common.Fail(c, http.StatusUnauthorized, "Not authorized", err)
		return
	}
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Token refresh failed", err)
		return
	}

	common.Success(c, http.StatusOK, "", gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Me godoc
// @Summary      Current user
// @Description  Returns the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	user, err := h.service.Me(principal.ID)
	if err != nil {
		common.Fail(c, http.StatusUnauthorized, "User not found. Token is invalid.", err)
		return
	}

	common.Success(c, http.StatusOK, "", gin.H{"user": user})
}
