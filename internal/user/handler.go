package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teesheet/internal/api"
	"teesheet/internal/auth"
	"teesheet/internal/logger"
)

type Handler struct {
	service    Service
	production bool
}

func NewHandler(service Service, production bool) *Handler {
	return &Handler{
		service:    service,
		production: production,
	}
}

// Register godoc
// @Summary      Register new user
// @Description  Creates a golfer account, signs them in and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "User registration data"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, "Please fill all fields.", err)
		return
	}

	user, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusBadRequest, api.Error("User with that email already exists."))
			return
		}
		logger.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error"))
		return
	}

	auth.SetTokenCookie(c, accessToken, h.production)
	c.JSON(http.StatusCreated, AuthResponse{
		Msg:          "User created successfully",
		User:         user.Profile(),
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticates by email and password and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, "Please fill all fields.", err)
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, api.Error("Invalid credentials."))
		case errors.Is(err, ErrAccountDisabled):
			c.JSON(http.StatusForbidden, api.Error("Account is deactivated."))
		default:
			logger.Error("login failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.Error("Server error"))
		}
		return
	}

	auth.SetTokenCookie(c, accessToken, h.production)
	c.JSON(http.StatusOK, AuthResponse{
		Msg:          "Logged in",
		User:         user.Profile(),
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearTokenCookie(c, h.production)
	c.JSON(http.StatusOK, api.Message("Logged out"))
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Returns a new access token for a valid refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token payload"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, "refreshToken is required", err)
		return
	}

	accessToken, user, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountDisabled):
			c.JSON(http.StatusForbidden, api.Error("Account is deactivated."))
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, api.Error("User not found."))
		default:
			c.JSON(http.StatusUnauthorized, api.Error("Invalid or expired refresh token"))
		}
		return
	}

	auth.SetTokenCookie(c, accessToken, h.production)
	c.JSON(http.StatusOK, AuthResponse{
		Msg:   "Token refreshed",
		User:  user.Profile(),
		Token: accessToken,
	})
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the profile of the authenticated user.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.Error("Not authorized"))
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Error("User not found."))
			return
		}
		logger.Error("load current user failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.Error("Server error"))
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: user.Profile()})
}
