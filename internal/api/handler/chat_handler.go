package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// ChatHandler handles turn submissions.
type ChatHandler struct {
	tasks ports.TaskService
}

func NewChatHandler(tasks ports.TaskService) *ChatHandler {
	return &ChatHandler{tasks: tasks}
}

// Chat handles POST /api/chat: submits the current turn's prompt and
// returns the AI response. Omitting task_id starts a fresh anonymous task.
//
// @Summary      Submit a prompt for the task's current turn
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      promptRequest  true  "Prompt submission"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  errorResponse  "validation, exhausted or completed task"
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "concurrent submission lost the turn race, retry"
// @Failure      500   {object}  errorResponse  "generation failed, turn not consumed"
// @Router       /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req promptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.tasks.SubmitTurn(c.Request().Context(), ports.SubmitTurnInput{
		TaskID: req.TaskID,
		Prompt: req.Prompt,
		UserID: req.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chatResponse{
		Task:         result.Task,
		Conversation: result.Conversation,
		AIResponse:   result.Conversation.AIResponse,
		WordCount:    result.Conversation.WordCount,
	})
}
