package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// TaskHandler handles HTTP requests for task lifecycle operations.
type TaskHandler struct {
	tasks ports.TaskService
	admin ports.AdminService
}

func NewTaskHandler(tasks ports.TaskService, admin ports.AdminService) *TaskHandler {
	return &TaskHandler{tasks: tasks, admin: admin}
}

// Create handles POST /api/tasks.
//
// @Summary      Create a new evaluation task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Optional owning user"
// @Success      200   {object}  domain.Task
// @Failure      500   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Get handles GET /api/tasks/:id: the task with its conversations and
// their ratings.
//
// @Summary      Get a task with conversations and ratings
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.admin.GetTaskDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// Complete handles POST /api/tasks/:id/complete. Completing an
// already-completed task returns it unchanged.
//
// @Summary      Complete a task and credit the owner
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	task, err := h.tasks.CompleteTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// toTaskDetailResponse maps the service view to the transport shape.
func toTaskDetailResponse(detail *ports.TaskDetail) taskDetailResponse {
	convs := make([]conversationWithRatingResponse, 0, len(detail.Conversations))
	for _, cw := range detail.Conversations {
		convs = append(convs, conversationWithRatingResponse{
			Conversation: cw.Conversation,
			Rating:       cw.Rating,
		})
	}
	return taskDetailResponse{
		Task:          detail.Task,
		User:          detail.User,
		Conversations: convs,
	}
}
