package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// ConversationRepository defines persistence operations for conversations.
type ConversationRepository interface {
	// Create inserts a new conversation and assigns its ID.
	Create(ctx context.Context, conv *domain.Conversation) error
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	// FindByTask returns the task's conversations ordered by turn.
	FindByTask(ctx context.Context, taskID string) ([]*domain.Conversation, error)
	// FindByTaskTurn returns the single conversation at the given turn, or
	// domain.ErrConversationNotFound.
	FindByTaskTurn(ctx context.Context, taskID string, turn int) (*domain.Conversation, error)
	// UpdateResponse replaces the AI response text and word count. Turn and
	// task reference are never touched.
	UpdateResponse(ctx context.Context, id, aiResponse string, wordCount int) (*domain.Conversation, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
}
