package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrConversationNotFound = errors.New("conversation not found")

// Conversation records one turn within a task: the prompt the tasker typed
// and the AI response it produced. UserPrompt is the literal text typed by
// the tasker, never the context-chained prompt sent to the generator.
// Turn and TaskID are immutable after creation.
type Conversation struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	TaskID     string    `json:"task_id" bson:"task_id"`
	UserID     string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Turn       int       `json:"turn" bson:"turn"`
	UserPrompt string    `json:"user_prompt" bson:"user_prompt"`
	AIResponse string    `json:"ai_response" bson:"ai_response"`
	WordCount  int       `json:"word_count" bson:"word_count"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// WordCount counts whitespace-separated words. It is the single definition
// used for the prompt limit, the response cap, and admin response edits.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
