package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// SubmitTurnInput carries one prompt submission. TaskID empty means a fresh
// anonymous task is created for the submission. UserID is optional
// attribution only.
type SubmitTurnInput struct {
	TaskID string
	Prompt string
	UserID string
}

// SubmitTurnResult is returned after a successful turn: the task with its
// advanced turn counter and the conversation the turn produced.
type SubmitTurnResult struct {
	Task         *domain.Task
	Conversation *domain.Conversation
}

// TaskService defines the task/turn engine use cases.
type TaskService interface {
	// CreateTask starts a new evaluation session at turn 1. ownerUserID may
	// be empty (anonymous task).
	CreateTask(ctx context.Context, ownerUserID string) (*domain.Task, error)
	// SubmitTurn validates the prompt, chains it with the prior turn's AI
	// response, invokes the generator, persists the conversation and
	// advances the turn counter. No two calls for the same task overlap.
	SubmitTurn(ctx context.Context, input SubmitTurnInput) (*SubmitTurnResult, error)
	// CompleteTask closes the task and credits the owner's stats. Completing
	// an already-completed task is a no-op that returns the task unchanged.
	CompleteTask(ctx context.Context, taskID string) (*domain.Task, error)
}
