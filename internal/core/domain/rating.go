package domain

import (
	"errors"
	"time"
)

// Score bounds for every rating criterion.
const (
	MinScore = 1
	MaxScore = 5
)

var ErrRatingNotFound = errors.New("rating not found")

// Rating is the evaluation of one conversation along five fixed criteria.
// At most one rating exists per conversation; repeated submissions merge
// into the existing one. ConversationID is immutable after creation.
type Rating struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	UserID         string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Accuracy       int       `json:"accuracy" bson:"accuracy"`
	Clarity        int       `json:"clarity" bson:"clarity"`
	Relevance      int       `json:"relevance" bson:"relevance"`
	Consistency    int       `json:"consistency" bson:"consistency"`
	Completeness   int       `json:"completeness" bson:"completeness"`
	Comments       string    `json:"comments,omitempty" bson:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// ValidScore reports whether n is inside the allowed [MinScore, MaxScore] range.
func ValidScore(n int) bool {
	return n >= MinScore && n <= MaxScore
}
