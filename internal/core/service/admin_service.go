package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

// AdminService implements the admin read model: task inspection views and
// response corrections.
type AdminService struct {
	tasks   ports.TaskRepository
	convs   ports.ConversationRepository
	ratings ports.RatingRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewAdminService(
	tasks ports.TaskRepository,
	convs ports.ConversationRepository,
	ratings ports.RatingRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{tasks: tasks, convs: convs, ratings: ratings, users: users, log: log}
}

// ListTasks returns every task with its owning user, oldest first.
func (s *AdminService) ListTasks(ctx context.Context) ([]ports.TaskWithUser, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ports.TaskWithUser, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ports.TaskWithUser{Task: task, User: s.resolveUser(ctx, task.UserID)})
	}
	return items, nil
}

// GetTaskDetail assembles the full inspection view of one task.
func (s *AdminService) GetTaskDetail(ctx context.Context, taskID string) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	convs, err := s.convs.FindByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	withRatings := make([]ports.ConversationWithRating, 0, len(convs))
	for _, conv := range convs {
		rating, err := s.ratings.FindByConversation(ctx, conv.ID)
		if err != nil && !errors.Is(err, domain.ErrRatingNotFound) {
			return nil, err
		}
		withRatings = append(withRatings, ports.ConversationWithRating{Conversation: conv, Rating: rating})
	}

	return &ports.TaskDetail{
		Task:          task,
		User:          s.resolveUser(ctx, task.UserID),
		Conversations: withRatings,
	}, nil
}

// UpdateConversationResponse replaces the AI response text of a conversation
// and recomputes the word count. Turn and task reference stay untouched.
func (s *AdminService) UpdateConversationResponse(ctx context.Context, conversationID, aiResponse string) (*domain.Conversation, error) {
	if aiResponse == "" {
		return nil, domain.NewValidationError("ai_response is required")
	}

	conv, err := s.convs.UpdateResponse(ctx, conversationID, aiResponse, domain.WordCount(aiResponse))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("conversation_id", conversationID).Int("word_count", conv.WordCount).Msg("conversation response edited")
	return conv, nil
}

// resolveUser looks up a task owner, substituting the Unknown sentinel for
// anonymous tasks and dangling references.
func (s *AdminService) resolveUser(ctx context.Context, userID string) *domain.User {
	if userID == "" {
		return domain.UnknownUser()
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UnknownUser()
	}
	return user
}
