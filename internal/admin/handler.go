package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teesheet/internal/api"
	"teesheet/internal/logger"
	"teesheet/internal/user"
)

type Handler struct {
	service Service
	users   user.Service
}

func NewHandler(service Service, users user.Service) *Handler {
	return &Handler{service: service, users: users}
}

type UsersResponse struct {
	Users []user.User `json:"users"`
}

type UserResponse struct {
	Msg  string     `json:"msg"`
	User *user.User `json:"user"`
}

func userID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.Error("Invalid user ID."))
		return 0, false
	}
	return id, true
}

func respondUserError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, api.Error("Invalid role."))
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.Error("User not found."))
	default:
		logger.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error."))
	}
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns every account, newest first.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  UsersResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondUserError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// UpdateRole godoc
// @Summary      Change user role
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "User ID"
// @Param        request  body      user.UpdateRoleRequest  true  "user or admin"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/users/{id}/role [patch]
func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req user.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Invalid role."))
		return
	}

	u, err := h.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		respondUserError(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Msg: "Role updated.", User: u})
}

// SetActive godoc
// @Summary      Activate or deactivate user
// @Description  Deactivated accounts cannot sign in or reach admin routes.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "User ID"
// @Param        request  body      user.SetActiveRequest  true  "Active flag"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/users/{id}/active [patch]
func (h *Handler) SetActive(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req user.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, "active must be true or false.", err)
		return
	}

	u, err := h.users.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		respondUserError(c, "set user active", err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{Msg: "User status updated.", User: u})
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  User count, booking counts by status and bookings per tee date.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		logger.Error("admin stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("Server error."))
		return
	}
	c.JSON(http.StatusOK, stats)
}
