package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

func seedConversation(t *testing.T, repo *stubConversationRepo, taskID string, turn int) *domain.Conversation {
	t.Helper()
	conv := &domain.Conversation{TaskID: taskID, Turn: turn, UserPrompt: "p", AIResponse: "r", WordCount: 1}
	if err := repo.Create(context.Background(), conv); err != nil {
		t.Fatalf("seed conversation: %v", err)
	}
	return conv
}

func fullInput(conversationID string) ports.UpsertRatingInput {
	return ports.UpsertRatingInput{
		ConversationID: conversationID,
		Accuracy:       4,
		Clarity:        5,
		Relevance:      3,
		Consistency:    4,
		Completeness:   2,
		Comments:       "solid answer",
	}
}

// ---------------------------------------------------------------------------
// UpsertRating tests
// ---------------------------------------------------------------------------

func TestRatingService_Upsert_CreatesRating(t *testing.T) {
	ratings := newStubRatingRepo()
	convs := newStubConversationRepo()
	svc := NewRatingService(ratings, convs, discardLogger)
	conv := seedConversation(t, convs, "task-1", 1)

	rating, err := svc.UpsertRating(context.Background(), fullInput(conv.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rating.ID == "" {
		t.Error("rating ID must be assigned")
	}
	if rating.ConversationID != conv.ID {
		t.Errorf("expected conversation_id %q, got %q", conv.ID, rating.ConversationID)
	}
	if rating.Accuracy != 4 || rating.Completeness != 2 {
		t.Errorf("scores not stored: %+v", rating)
	}
	if rating.Comments != "solid answer" {
		t.Errorf("comments not stored: %q", rating.Comments)
	}
	if rating.CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
}

func TestRatingService_Upsert_SecondSubmissionMerges(t *testing.T) {
	ratings := newStubRatingRepo()
	convs := newStubConversationRepo()
	svc := NewRatingService(ratings, convs, discardLogger)
	conv := seedConversation(t, convs, "task-1", 1)

	first, err := svc.UpsertRating(context.Background(), fullInput(conv.ID))
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	revised := fullInput(conv.ID)
	revised.Accuracy = 1
	revised.Comments = "changed my mind"
	second, err := svc.UpsertRating(context.Background(), revised)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second submission must merge onto the first rating: %q vs %q", second.ID, first.ID)
	}
	if len(ratings.ratings) != 1 {
		t.Fatalf("expected exactly 1 stored rating, got %d", len(ratings.ratings))
	}
	if second.Accuracy != 1 {
		t.Errorf("expected revised accuracy 1, got %d", second.Accuracy)
	}
	if second.Comments != "changed my mind" {
		t.Errorf("expected revised comments, got %q", second.Comments)
	}
}

func TestRatingService_Upsert_EmptyCommentsPreservedOnMerge(t *testing.T) {
	ratings := newStubRatingRepo()
	convs := newStubConversationRepo()
	svc := NewRatingService(ratings, convs, discardLogger)
	conv := seedConversation(t, convs, "task-1", 1)

	if _, err := svc.UpsertRating(context.Background(), fullInput(conv.ID)); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	revised := fullInput(conv.ID)
	revised.Comments = ""
	second, err := svc.UpsertRating(context.Background(), revised)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.Comments != "solid answer" {
		t.Errorf("empty comments must not wipe the stored ones, got %q", second.Comments)
	}
}

func TestRatingService_Upsert_CollectsAllInvalidScores(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), newStubConversationRepo(), discardLogger)

	input := ports.UpsertRatingInput{
		ConversationID: "conv-1",
		Accuracy:       0,
		Clarity:        6,
		Relevance:      3,
		Consistency:    4,
		Completeness:   -1,
	}
	_, err := svc.UpsertRating(context.Background(), input)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 offending fields, got %d: %v", len(verr.Fields), verr.Fields)
	}
	for _, want := range []string{"accuracy", "clarity", "completeness"} {
		found := false
		for _, f := range verr.Fields {
			if strings.HasPrefix(f, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q among offending fields: %v", want, verr.Fields)
		}
	}
}

func TestRatingService_Upsert_UnknownConversation(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), newStubConversationRepo(), discardLogger)

	_, err := svc.UpsertRating(context.Background(), fullInput("missing"))
	if !errors.Is(err, domain.ErrConversationNotFound) {
		t.Fatalf("expected conversation not-found error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// PatchRating tests
// ---------------------------------------------------------------------------

func TestRatingService_Patch_PartialUpdate(t *testing.T) {
	ratings := newStubRatingRepo()
	convs := newStubConversationRepo()
	svc := NewRatingService(ratings, convs, discardLogger)
	conv := seedConversation(t, convs, "task-1", 1)

	created, err := svc.UpsertRating(context.Background(), fullInput(conv.ID))
	if err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	accuracy := 1
	comments := "admin correction"
	patched, err := svc.PatchRating(context.Background(), created.ID, ports.RatingUpdate{Accuracy: &accuracy, Comments: &comments})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if patched.Accuracy != 1 {
		t.Errorf("expected patched accuracy 1, got %d", patched.Accuracy)
	}
	if patched.Comments != "admin correction" {
		t.Errorf("expected patched comments, got %q", patched.Comments)
	}
	// Untouched scores survive.
	if patched.Clarity != 5 || patched.Relevance != 3 {
		t.Errorf("untouched scores must be preserved: %+v", patched)
	}
	if patched.ConversationID != conv.ID {
		t.Error("conversation reference must never change")
	}
}

func TestRatingService_Patch_EmptyPatchRejected(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), newStubConversationRepo(), discardLogger)

	_, err := svc.PatchRating(context.Background(), "rating-1", ports.RatingUpdate{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}
}

func TestRatingService_Patch_OutOfRangeScoreRejected(t *testing.T) {
	ratings := newStubRatingRepo()
	convs := newStubConversationRepo()
	svc := NewRatingService(ratings, convs, discardLogger)
	conv := seedConversation(t, convs, "task-1", 1)
	created, _ := svc.UpsertRating(context.Background(), fullInput(conv.ID))

	bad := 9
	_, err := svc.PatchRating(context.Background(), created.ID, ports.RatingUpdate{Clarity: &bad})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	stored, _ := ratings.FindByID(context.Background(), created.ID)
	if stored.Clarity != 5 {
		t.Error("rejected patch must not modify the stored rating")
	}
}

func TestRatingService_Patch_UnknownRating(t *testing.T) {
	svc := NewRatingService(newStubRatingRepo(), newStubConversationRepo(), discardLogger)

	score := 3
	_, err := svc.PatchRating(context.Background(), "missing", ports.RatingUpdate{Accuracy: &score})
	if !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected rating not-found error, got %v", err)
	}
}
