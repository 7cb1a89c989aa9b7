package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// AdminHandler handles the admin read model and correction endpoints.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListTasks handles GET /api/admin/tasks: all tasks with their owners.
//
// @Summary      List all tasks with owning users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskWithUserResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /admin/tasks [get]
func (h *AdminHandler) ListTasks(c echo.Context) error {
	items, err := h.admin.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]taskWithUserResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, taskWithUserResponse{Task: item.Task, User: item.User})
	}
	return c.JSON(http.StatusOK, resp)
}

// TaskDetail handles GET /api/admin/tasks/:id: the full inspection view.
//
// @Summary      Get a task with user, conversations and ratings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/tasks/{id} [get]
func (h *AdminHandler) TaskDetail(c echo.Context) error {
	detail, err := h.admin.GetTaskDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// PatchConversation handles PATCH /api/conversations/:id: replaces a
// conversation's AI response and recomputes its word count.
//
// @Summary      Edit a conversation's AI response
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Conversation ID"
// @Param        body  body      conversationPatchRequest  true  "Replacement response text"
// @Success      200   {object}  domain.Conversation
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /conversations/{id} [patch]
func (h *AdminHandler) PatchConversation(c echo.Context) error {
	var req conversationPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conv, err := h.admin.UpdateConversationResponse(c.Request().Context(), c.Param("id"), req.AIResponse)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, conv)
}
