package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// UpsertRatingInput is a full rating submission: all five criterion scores
// must be present and in range. UserID is optional attribution.
type UpsertRatingInput struct {
	ConversationID string
	UserID         string
	Accuracy       int
	Clarity        int
	Relevance      int
	Consistency    int
	Completeness   int
	Comments       string
}

// RatingService defines the rating engine use cases.
type RatingService interface {
	// UpsertRating creates the conversation's rating or, when one already
	// exists, merges the submission onto it. Submitting twice never
	// duplicates.
	UpsertRating(ctx context.Context, input UpsertRatingInput) (*domain.Rating, error)
	// PatchRating applies a partial by-id update (admin correction path).
	PatchRating(ctx context.Context, ratingID string, patch RatingUpdate) (*domain.Rating, error)
}
