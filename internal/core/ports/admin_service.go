package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// ConversationWithRating pairs a conversation with its rating, nil when the
// conversation has not been rated yet.
type ConversationWithRating struct {
	Conversation *domain.Conversation
	Rating       *domain.Rating
}

// TaskDetail is the full inspection view of one task: the owning user (the
// Unknown sentinel when the reference dangles) and the conversations ordered
// by turn, each with its rating.
type TaskDetail struct {
	Task          *domain.Task
	User          *domain.User
	Conversations []ConversationWithRating
}

// TaskWithUser is the lightweight list item for the admin task overview.
type TaskWithUser struct {
	Task *domain.Task
	User *domain.User
}

// AdminService defines the admin read model and correction operations.
type AdminService interface {
	ListTasks(ctx context.Context) ([]TaskWithUser, error)
	GetTaskDetail(ctx context.Context, taskID string) (*TaskDetail, error)
	// UpdateConversationResponse replaces a conversation's AI response text
	// and recomputes its word count.
	UpdateConversationResponse(ctx context.Context, conversationID, aiResponse string) (*domain.Conversation, error)
}
