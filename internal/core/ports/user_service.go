package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// UserStats is the per-user earnings view. TasksCompleted and TotalEarnings
// are recomputed from the user's completed tasks rather than read from the
// stored counters, so admin task corrections are reflected immediately.
type UserStats struct {
	User           *domain.User
	TasksCompleted int
	TotalEarnings  float64
}

// UserHistory collects everything a user has submitted.
type UserHistory struct {
	Tasks         []*domain.Task
	Conversations []*domain.Conversation
	Ratings       []*domain.Rating
}

// UserService defines the tasker-facing account views.
type UserService interface {
	Stats(ctx context.Context, userID string) (*UserStats, error)
	History(ctx context.Context, userID string) (*UserHistory, error)
}
