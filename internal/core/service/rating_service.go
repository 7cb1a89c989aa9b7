package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratetask/rating-platform/internal/api/metrics"
	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

// RatingService implements the rating engine: validated upsert per
// conversation and partial by-id patches.
type RatingService struct {
	ratings ports.RatingRepository
	convs   ports.ConversationRepository
	log     zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, convs ports.ConversationRepository, log zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, convs: convs, log: log}
}

// UpsertRating stores a full rating submission for a conversation. The first
// submission creates the rating; every later one merges onto it, so
// submitting twice yields exactly one stored rating.
func (s *RatingService) UpsertRating(ctx context.Context, input ports.UpsertRatingInput) (*domain.Rating, error) {
	if err := validateFullScores(input); err != nil {
		return nil, err
	}

	if _, err := s.convs.FindByID(ctx, input.ConversationID); err != nil {
		return nil, err
	}

	existing, err := s.ratings.FindByConversation(ctx, input.ConversationID)
	if err != nil && !errors.Is(err, domain.ErrRatingNotFound) {
		return nil, err
	}

	if existing != nil {
		update := ports.RatingUpdate{
			Accuracy:     &input.Accuracy,
			Clarity:      &input.Clarity,
			Relevance:    &input.Relevance,
			Consistency:  &input.Consistency,
			Completeness: &input.Completeness,
		}
		if input.Comments != "" {
			update.Comments = &input.Comments
		}

		updated, err := s.ratings.Update(ctx, existing.ID, update)
		if err != nil {
			return nil, err
		}

		metrics.RatingsUpsertedTotal.WithLabelValues("updated").Inc()
		s.log.Info().Str("rating_id", updated.ID).Str("conversation_id", input.ConversationID).Msg("rating updated")
		return updated, nil
	}

	rating := &domain.Rating{
		ConversationID: input.ConversationID,
		UserID:         input.UserID,
		Accuracy:       input.Accuracy,
		Clarity:        input.Clarity,
		Relevance:      input.Relevance,
		Consistency:    input.Consistency,
		Completeness:   input.Completeness,
		Comments:       input.Comments,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		s.log.Error().Err(err).Str("conversation_id", input.ConversationID).Msg("failed to create rating")
		return nil, err
	}

	metrics.RatingsUpsertedTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("rating_id", rating.ID).Str("conversation_id", input.ConversationID).Msg("rating created")
	return rating, nil
}

// PatchRating applies a partial update directly by rating ID (admin
// correction path). Any subset of scores and/or comments may be supplied;
// supplied scores are still range-checked.
func (s *RatingService) PatchRating(ctx context.Context, ratingID string, patch ports.RatingUpdate) (*domain.Rating, error) {
	if patch.Empty() {
		return nil, domain.NewValidationError("at least one field must be supplied")
	}
	if err := validatePartialScores(patch); err != nil {
		return nil, err
	}

	updated, err := s.ratings.Update(ctx, ratingID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("rating_id", ratingID).Msg("rating patched")
	return updated, nil
}

// validateFullScores checks the five mandatory criterion scores and collects
// every offending field into one ValidationError.
func validateFullScores(input ports.UpsertRatingInput) error {
	var fields []string
	for _, c := range []struct {
		name  string
		score int
	}{
		{"accuracy", input.Accuracy},
		{"clarity", input.Clarity},
		{"relevance", input.Relevance},
		{"consistency", input.Consistency},
		{"completeness", input.Completeness},
	} {
		if !domain.ValidScore(c.score) {
			fields = append(fields, fmt.Sprintf("%s must be between %d and %d", c.name, domain.MinScore, domain.MaxScore))
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// validatePartialScores range-checks only the scores present in the patch.
func validatePartialScores(patch ports.RatingUpdate) error {
	var fields []string
	for _, c := range []struct {
		name  string
		score *int
	}{
		{"accuracy", patch.Accuracy},
		{"clarity", patch.Clarity},
		{"relevance", patch.Relevance},
		{"consistency", patch.Consistency},
		{"completeness", patch.Completeness},
	} {
		if c.score != nil && !domain.ValidScore(*c.score) {
			fields = append(fields, fmt.Sprintf("%s must be between %d and %d", c.name, domain.MinScore, domain.MaxScore))
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
