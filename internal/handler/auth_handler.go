package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthData is the payload returned on successful register or login.
type AuthData struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailRegistered) {
			return sendError(c, http.StatusBadRequest, err.Error())
		}
		return sendError(c, http.StatusInternalServerError, "Registration failed")
	}

	return sendSuccess(c, http.StatusCreated, "Registration successful", AuthData{User: user, Token: token})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return sendError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return sendError(c, http.StatusUnauthorized, err.Error())
		}
		return sendError(c, http.StatusInternalServerError, "Login failed")
	}

	userData := auth.CurrentUser{ID: user.ID, Email: user.Email, Name: user.Name}
	return sendSuccess(c, http.StatusOK, "Login successful", AuthData{User: userData, Token: token})
}

// Logout godoc
// @Summary Logout
// @Description The server keeps no session state; the client discards its token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return sendSuccess(c, http.StatusOK, "Logout successful. Please delete the token on client side.", nil)
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return sendError(c, http.StatusUnauthorized, "User not found.")
	}
	return sendSuccess(c, http.StatusOK, "Profile retrieved successfully", echo.Map{"user": user})
}
