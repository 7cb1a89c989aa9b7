package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// UserService implements the tasker-facing account views.
type UserService struct {
	users   ports.UserRepository
	tasks   ports.TaskRepository
	convs   ports.ConversationRepository
	ratings ports.RatingRepository
	log     zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	convs ports.ConversationRepository,
	ratings ports.RatingRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, tasks: tasks, convs: convs, ratings: ratings, log: log}
}

// Stats recomputes the user's completion count and earnings from their
// completed tasks at the fixed per-task payout, mirroring what the stored
// counters should hold. Recomputing keeps the view honest after admin
// corrections.
func (s *UserService) Stats(ctx context.Context, userID string) (*ports.UserStats, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}

	return &ports.UserStats{
		User:           user,
		TasksCompleted: completed,
		TotalEarnings:  float64(completed) * payoutPerTask,
	}, nil
}

// History returns everything the user has submitted.
func (s *UserService) History(ctx context.Context, userID string) (*ports.UserHistory, error) {
	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs, err := s.convs.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.UserHistory{Tasks: tasks, Conversations: convs, Ratings: ratings}, nil
}
