package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// RatingUpdate carries a partial rating update. Nil fields are preserved on
// the stored rating; the conversation reference can never be changed.
type RatingUpdate struct {
	Accuracy     *int
	Clarity      *int
	Relevance    *int
	Consistency  *int
	Completeness *int
	Comments     *string
}

// Empty reports whether the update carries no fields at all.
func (u RatingUpdate) Empty() bool {
	return u.Accuracy == nil && u.Clarity == nil && u.Relevance == nil &&
		u.Consistency == nil && u.Completeness == nil && u.Comments == nil
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// Create inserts a new rating and assigns its ID.
	Create(ctx context.Context, r *domain.Rating) error
	FindByID(ctx context.Context, id string) (*domain.Rating, error)
	// FindByConversation returns the conversation's rating, or
	// domain.ErrRatingNotFound when it has not been rated yet.
	FindByConversation(ctx context.Context, conversationID string) (*domain.Rating, error)
	// Update merges the supplied fields onto the stored rating and returns
	// the result.
	Update(ctx context.Context, id string, update RatingUpdate) (*domain.Rating, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Rating, error)
}
