package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// UserHandler handles tasker-facing account views.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Stats handles GET /api/users/:id/stats.
//
// @Summary      Get a user's completion stats and earnings
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userStatsResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.users.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userStatsResponse{
		ID:             stats.User.ID,
		Username:       stats.User.Username,
		Role:           stats.User.Role,
		TasksCompleted: stats.TasksCompleted,
		TotalEarnings:  stats.TotalEarnings,
	})
}

// History handles GET /api/users/:id/history.
//
// @Summary      Get everything a user has submitted
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userHistoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/history [get]
func (h *UserHandler) History(c echo.Context) error {
	history, err := h.users.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userHistoryResponse{
		Tasks:         history.Tasks,
		Conversations: history.Conversations,
		Ratings:       history.Ratings,
	})
}
