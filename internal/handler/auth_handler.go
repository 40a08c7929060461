package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "microblog/internal/errors"
	"microblog/internal/model"
	"microblog/internal/service"
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
	Username        string  `json:"username" validate:"required,min=3,max=80,username"`
	Email           string  `json:"email" validate:"required,email,max=120"`
	Password        string  `json:"password" validate:"required,min=8,max=128,password"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       *string `json:"first_name" validate:"omitempty,max=50"`
	LastName        *string `json:"last_name" validate:"omitempty,max=50"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required,max=128"`
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=120"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Message      string             `json:"message,omitempty"`
	User         *model.UserProfile `json:"user,omitempty"`
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return writeError(c, err)
	}

	accessToken, refreshToken, err := h.authService.IssueTokens(user.ID)
	if err != nil {
		return writeError(c, err)
	}

	profile := user.Profile(true)
	return c.JSON(http.StatusCreated, AuthResponse{
		Message:      "User registered successfully",
		User:         &profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login godoc
// @Summary Login with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	accessToken, refreshToken, err := h.authService.IssueTokens(user.ID)
	if err != nil {
		return writeError(c, err)
	}

	profile := user.Profile(true)
	return c.JSON(http.StatusOK, AuthResponse{
		Message:      "Login successful",
		User:         &profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh godoc
// @Summary Mint a new access token from a refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken, ok := bearerToken(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken})
}

// Me godoc
// @Summary Get the current user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]model.UserProfile
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Profile(true)})
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeError(c, apperrors.ErrUnauthorized)
	}

	var req UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return writeBadJSON(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), user, service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Email already taken"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    updated.Profile(true),
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
