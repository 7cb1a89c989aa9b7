package domain

import (
	"errors"
	"time"
)

// DefaultMaxTurns is the fixed number of prompt/response turns per task.
const DefaultMaxTurns = 3

var ErrTaskNotFound = errors.New("task not found")
var ErrTaskExhausted = errors.New("task is already completed or at maximum turns")
var ErrTurnConflict = errors.New("concurrent turn submission detected")

// Task is the aggregate root of one evaluation session. A tasker submits up
// to MaxTurns sequential prompts against it; each turn produces a
// Conversation. Once completed a task is never reopened.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	UserID      string     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	CurrentTurn int        `json:"current_turn" bson:"current_turn"`
	MaxTurns    int        `json:"max_turns" bson:"max_turns"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// TurnAvailable reports whether the task can still accept a turn submission.
// CurrentTurn stays in [1, MaxTurns+1]; once it passes MaxTurns the task is
// turn-exhausted for good.
func (t *Task) TurnAvailable() bool {
	return !t.Completed && t.CurrentTurn <= t.MaxTurns
}
