package handler

import (
	"github.com/ratetask/rating-platform/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTaskRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// promptRequest submits one turn. The 60-word prompt limit is enforced by
// the task engine, which owns the rule.
type promptRequest struct {
	Prompt string `json:"prompt"  validate:"required"`
	TaskID string `json:"task_id,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

type ratingRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	Accuracy       int    `json:"accuracy"        validate:"required,min=1,max=5"`
	Clarity        int    `json:"clarity"         validate:"required,min=1,max=5"`
	Relevance      int    `json:"relevance"       validate:"required,min=1,max=5"`
	Consistency    int    `json:"consistency"     validate:"required,min=1,max=5"`
	Completeness   int    `json:"completeness"    validate:"required,min=1,max=5"`
	Comments       string `json:"comments,omitempty"`
	UserID         string `json:"user_id,omitempty"`
}

// ratingPatchRequest carries a partial correction. Absent fields stay
// untouched on the stored rating.
type ratingPatchRequest struct {
	Accuracy     *int    `json:"accuracy,omitempty"     validate:"omitempty,min=1,max=5"`
	Clarity      *int    `json:"clarity,omitempty"      validate:"omitempty,min=1,max=5"`
	Relevance    *int    `json:"relevance,omitempty"    validate:"omitempty,min=1,max=5"`
	Consistency  *int    `json:"consistency,omitempty"  validate:"omitempty,min=1,max=5"`
	Completeness *int    `json:"completeness,omitempty" validate:"omitempty,min=1,max=5"`
	Comments     *string `json:"comments,omitempty"`
}

type conversationPatchRequest struct {
	AIResponse string `json:"ai_response" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=3"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// chatResponse mirrors the turn submission result. AIResponse and WordCount
// duplicate the conversation fields for client convenience.
type chatResponse struct {
	Task         *domain.Task         `json:"task"`
	Conversation *domain.Conversation `json:"conversation"`
	AIResponse   string               `json:"ai_response"`
	WordCount    int                  `json:"word_count"`
}

// conversationWithRatingResponse flattens the conversation and attaches its
// rating, null when unrated.
type conversationWithRatingResponse struct {
	*domain.Conversation
	Rating *domain.Rating `json:"rating,omitempty"`
}

// taskDetailResponse flattens the task and attaches owner and conversations.
type taskDetailResponse struct {
	*domain.Task
	User          *domain.User                     `json:"user"`
	Conversations []conversationWithRatingResponse `json:"conversations"`
}

type taskWithUserResponse struct {
	*domain.Task
	User *domain.User `json:"user"`
}

type userStatsResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Role           string  `json:"role"`
	TasksCompleted int     `json:"tasks_completed"`
	TotalEarnings  float64 `json:"total_earnings"`
}

type userHistoryResponse struct {
	Tasks         []*domain.Task         `json:"tasks"`
	Conversations []*domain.Conversation `json:"conversations"`
	Ratings       []*domain.Rating       `json:"ratings"`
}
