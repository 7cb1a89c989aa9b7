package ports

import (
	"context"
	"time"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create inserts a new task and assigns its ID.
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// AdvanceTurn moves current_turn from fromTurn to fromTurn+1 as a single
	// compare-and-swap. It fails with domain.ErrTurnConflict when the task no
	// longer sits at fromTurn (a concurrent submission won the race) and
	// returns the updated task on success.
	AdvanceTurn(ctx context.Context, id string, fromTurn int) (*domain.Task, error)
	// MarkCompleted transitions the task to its terminal completed state.
	// The transitioned result is true only for the call that actually flipped
	// the flag; a task that was already completed is returned unchanged with
	// transitioned false, so completion side effects run at most once.
	MarkCompleted(ctx context.Context, id string, at time.Time) (task *domain.Task, transitioned bool, err error)
	// List returns all tasks ordered by creation time.
	List(ctx context.Context) ([]*domain.Task, error)
	// FindByUser returns the user's tasks, newest first.
	FindByUser(ctx context.Context, userID string) ([]*domain.Task, error)
}
