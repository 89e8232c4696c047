package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/middleware"
	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"max=80"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"max=80"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type profileResponse struct {
	UID string `json:"uid"`
	*domain.User
}

type pointsResponse struct {
	Points      int         `json:"points"`
	DisplayName string      `json:"displayName"`
	Role        domain.Role `json:"role"`
}

// Register creates a local account and its profile.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Session creates the caller's profile on first sign-in.
//
// @Summary      Bootstrap the caller's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/session [post]
func (h *AuthHandler) Session(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.Subject == "" {
		return fmt.Errorf("%w: missing authentication claims", domain.ErrUnauthorized)
	}

	user, err := h.authService.Session(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Profile returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{UID: user.ID, User: user})
}

// UpdateProfile changes the caller's display name or photo.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.UpdateProfile(c.Request().Context(), caller, ports.ProfileUpdate{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Profile updated successfully"})
}

// Points returns the caller's persisted points.
//
// @Summary      Get own points
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pointsResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/auth/points [get]
func (h *AuthHandler) Points(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pointsResponse{
		Points:      user.Points,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}
