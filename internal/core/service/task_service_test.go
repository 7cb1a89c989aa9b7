package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

func newTaskService(tasks *stubTaskRepo, convs *stubConversationRepo, users *stubUserRepo, gen ports.ResponseGenerator, cache GenerationCache) *TaskService {
	return NewTaskService(tasks, convs, users, gen, cache, discardLogger)
}

func seedTask(t *testing.T, repo *stubTaskRepo, userID string) *domain.Task {
	t.Helper()
	task := &domain.Task{UserID: userID, CurrentTurn: 1, MaxTurns: domain.DefaultMaxTurns}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// CreateTask tests
// ---------------------------------------------------------------------------

func TestTaskService_CreateTask_StartsAtTurnOne(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)

	task, err := svc.CreateTask(context.Background(), "user-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.ID == "" {
		t.Error("task ID must be assigned")
	}
	if task.CurrentTurn != 1 {
		t.Errorf("expected current_turn 1, got %d", task.CurrentTurn)
	}
	if task.MaxTurns != domain.DefaultMaxTurns {
		t.Errorf("expected max_turns %d, got %d", domain.DefaultMaxTurns, task.MaxTurns)
	}
	if task.Completed {
		t.Error("new task must not be completed")
	}
	if task.UserID != "user-9" {
		t.Errorf("expected user_id %q, got %q", "user-9", task.UserID)
	}
}

// ---------------------------------------------------------------------------
// SubmitTurn tests
// ---------------------------------------------------------------------------

func TestTaskService_SubmitTurn_AdvancesTurn(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	svc := newTaskService(tasks, convs, newStubUserRepo(), &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	result, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "hello there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Task.CurrentTurn != 2 {
		t.Errorf("expected current_turn 2 after first submission, got %d", result.Task.CurrentTurn)
	}
	if result.Conversation.Turn != 1 {
		t.Errorf("conversation must record the turn it was submitted at; got %d", result.Conversation.Turn)
	}
	if result.Conversation.UserPrompt != "hello there" {
		t.Errorf("stored prompt must be the literal typed text, got %q", result.Conversation.UserPrompt)
	}
	if result.Conversation.AIResponse == "" {
		t.Error("conversation must carry the AI response")
	}
	if result.Conversation.WordCount != domain.WordCount(result.Conversation.AIResponse) {
		t.Error("word count must match the stored response")
	}
}

func TestTaskService_SubmitTurn_EmptyTaskIDCreatesAnonymousTask(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)

	result, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{Prompt: "first words"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Task.ID == "" {
		t.Fatal("a fresh task must be created when no task ID is supplied")
	}
	if result.Task.CurrentTurn != 2 {
		t.Errorf("fresh task must advance to turn 2 after the submission, got %d", result.Task.CurrentTurn)
	}
	if len(tasks.tasks) != 1 {
		t.Errorf("expected exactly 1 stored task, got %d", len(tasks.tasks))
	}
}

func TestTaskService_SubmitTurn_ChainsPreviousResponse(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	gen := &stubGenerator{}
	svc := newTaskService(tasks, convs, newStubUserRepo(), gen, nil)
	task := seedTask(t, tasks, "")

	if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "P1"}); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	second, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "P2"})
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	want := "echo: P1\n\nP2"
	if got := gen.prompts[1]; got != want {
		t.Errorf("effective prompt for turn 2: got %q, want %q", got, want)
	}
	// The stored conversation keeps the literal prompt, not the chained one.
	if second.Conversation.UserPrompt != "P2" {
		t.Errorf("stored prompt must stay literal, got %q", second.Conversation.UserPrompt)
	}
}

func TestTaskService_SubmitTurn_MissingPreviousConversationDegradesToBarePrompt(t *testing.T) {
	tasks := newStubTaskRepo()
	gen := &stubGenerator{}
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), gen, nil)

	// Task already at turn 2 with no turn-1 conversation stored.
	task := seedTask(t, tasks, "")
	tasks.tasks[task.ID].CurrentTurn = 2

	if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "P2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gen.prompts[0]; got != "P2" {
		t.Errorf("missing context must degrade to the bare prompt, got %q", got)
	}
}

func TestTaskService_SubmitTurn_RejectsEmptyPrompt(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	_, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if tasks.tasks[task.ID].CurrentTurn != 1 {
		t.Error("rejected prompt must not consume the turn")
	}
}

func TestTaskService_SubmitTurn_RejectsOverlongPrompt(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	svc := newTaskService(tasks, convs, newStubUserRepo(), &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	// 61 single-letter words, one past the limit.
	prompt := strings.TrimSpace(strings.Repeat("w ", 61))
	_, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: prompt})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for 61 words, got %v", err)
	}

	if tasks.tasks[task.ID].CurrentTurn != 1 {
		t.Error("rejected prompt must not advance the turn")
	}
	if len(convs.convs) != 0 {
		t.Error("rejected prompt must not persist a conversation")
	}

	// Exactly 60 words passes.
	prompt = strings.TrimSpace(strings.Repeat("w ", 60))
	if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: prompt}); err != nil {
		t.Fatalf("60-word prompt must be accepted: %v", err)
	}
}

func TestTaskService_SubmitTurn_GeneratorFailureLeavesTurnUnconsumed(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := newTaskService(tasks, convs, newStubUserRepo(), gen, nil)
	task := seedTask(t, tasks, "")

	_, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "hello"})
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}

	if tasks.tasks[task.ID].CurrentTurn != 1 {
		t.Error("failed generation must not consume the turn")
	}
	if len(convs.convs) != 0 {
		t.Error("failed generation must not persist a conversation")
	}

	// A retry after the upstream recovers succeeds on the same turn.
	gen.err = nil
	result, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "hello"})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if result.Conversation.Turn != 1 {
		t.Errorf("retry must land on turn 1, got %d", result.Conversation.Turn)
	}
}

func TestTaskService_SubmitTurn_ExhaustedTask(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	for turn := 1; turn <= domain.DefaultMaxTurns; turn++ {
		if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "go on"}); err != nil {
			t.Fatalf("turn %d failed: %v", turn, err)
		}
	}

	_, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "one more"})
	if !errors.Is(err, domain.ErrTaskExhausted) {
		t.Fatalf("expected exhausted error past max turns, got %v", err)
	}
}

func TestTaskService_SubmitTurn_UnknownTask(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)

	_, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: "nope", Prompt: "hello"})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTaskService_SubmitTurn_GaplessTurnsUnderConcurrency(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	svc := newTaskService(tasks, convs, newStubUserRepo(), &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	var wg sync.WaitGroup
	for i := 0; i < domain.DefaultMaxTurns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: "race"})
		}()
	}
	wg.Wait()

	stored, _ := convs.FindByTask(context.Background(), task.ID)
	if len(stored) != domain.DefaultMaxTurns {
		t.Fatalf("expected %d conversations, got %d", domain.DefaultMaxTurns, len(stored))
	}
	for i, c := range stored {
		if c.Turn != i+1 {
			t.Errorf("turn sequence must be gapless: position %d holds turn %d", i, c.Turn)
		}
	}
	if got := tasks.tasks[task.ID].CurrentTurn; got != domain.DefaultMaxTurns+1 {
		t.Errorf("expected final current_turn %d, got %d", domain.DefaultMaxTurns+1, got)
	}
}

func TestTaskService_SubmitTurn_UsesCache(t *testing.T) {
	tasks := newStubTaskRepo()
	gen := &stubGenerator{}
	cache := newStubCache()
	svc := newTaskService(tasks, newStubConversationRepo(), newStubUserRepo(), gen, cache)

	first := seedTask(t, tasks, "")
	if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: first.ID, Prompt: "same prompt"}); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// An identical effective prompt on another task hits the cache.
	second := seedTask(t, tasks, "")
	if _, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: second.ID, Prompt: "same prompt"}); err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	if len(gen.prompts) != 1 {
		t.Errorf("cache hit must skip the generator; generator saw %d prompts", len(gen.prompts))
	}
	if cache.stores != 1 {
		t.Errorf("expected exactly 1 cache store, got %d", cache.stores)
	}
}

// ---------------------------------------------------------------------------
// CompleteTask tests
// ---------------------------------------------------------------------------

func TestTaskService_CompleteTask_CreditsOwnerOnce(t *testing.T) {
	tasks := newStubTaskRepo()
	users := newStubUserRepo()
	owner := &domain.User{Username: "tasker", Role: domain.RoleTasker}
	if err := users.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := newTaskService(tasks, newStubConversationRepo(), users, &stubGenerator{}, nil)
	task := seedTask(t, tasks, owner.ID)

	completed, err := svc.CompleteTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed.Completed {
		t.Error("task must be completed")
	}
	if completed.CompletedAt == nil {
		t.Error("completed_at must be set")
	}

	// A second completion is a no-op, not an error.
	again, err := svc.CompleteTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("second completion must not fail: %v", err)
	}
	if !again.Completed {
		t.Error("task must stay completed")
	}

	stored, _ := users.FindByID(context.Background(), owner.ID)
	if stored.TasksCompleted != 1 {
		t.Errorf("owner must be credited exactly once, got %d completions", stored.TasksCompleted)
	}
	if stored.TotalEarnings != payoutPerTask {
		t.Errorf("expected earnings %.2f, got %.2f", payoutPerTask, stored.TotalEarnings)
	}
	if len(users.credits) != 1 {
		t.Errorf("expected 1 credit call, got %d", len(users.credits))
	}
}

func TestTaskService_CompleteTask_AnonymousTaskSkipsCredit(t *testing.T) {
	tasks := newStubTaskRepo()
	users := newStubUserRepo()
	svc := newTaskService(tasks, newStubConversationRepo(), users, &stubGenerator{}, nil)
	task := seedTask(t, tasks, "")

	if _, err := svc.CompleteTask(context.Background(), task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users.credits) != 0 {
		t.Error("anonymous task completion must not credit anyone")
	}
}

func TestTaskService_CompleteTask_UnknownTask(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), newStubConversationRepo(), newStubUserRepo(), &stubGenerator{}, nil)

	_, err := svc.CompleteTask(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Full session scenario
// ---------------------------------------------------------------------------

func TestTaskService_FullThreeTurnSession(t *testing.T) {
	tasks := newStubTaskRepo()
	convs := newStubConversationRepo()
	users := newStubUserRepo()
	owner := &domain.User{Username: "eve", Role: domain.RoleTasker}
	if err := users.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	gen := &stubGenerator{}
	svc := newTaskService(tasks, convs, users, gen, nil)
	ratingRepo := newStubRatingRepo()
	ratingSvc := NewRatingService(ratingRepo, convs, discardLogger)

	task, err := svc.CreateTask(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	prompts := []string{"P1", "P2", "P3"}
	for i, p := range prompts {
		result, err := svc.SubmitTurn(context.Background(), ports.SubmitTurnInput{TaskID: task.ID, Prompt: p, UserID: owner.ID})
		if err != nil {
			t.Fatalf("turn %d failed: %v", i+1, err)
		}
		if result.Conversation.Turn != i+1 {
			t.Errorf("turn %d: conversation recorded turn %d", i+1, result.Conversation.Turn)
		}

		if _, err := ratingSvc.UpsertRating(context.Background(), ports.UpsertRatingInput{
			ConversationID: result.Conversation.ID,
			UserID:         owner.ID,
			Accuracy:       4, Clarity: 4, Relevance: 4, Consistency: 4, Completeness: 4,
		}); err != nil {
			t.Fatalf("rate turn %d: %v", i+1, err)
		}
	}

	// Every effective prompt past the first chains the prior echo.
	if gen.prompts[1] != "echo: P1\n\nP2" || gen.prompts[2] != "echo: echo: P1\n\nP2\n\nP3" {
		t.Errorf("context chaining broken: %q", gen.prompts)
	}
	if len(ratingRepo.ratings) != 3 {
		t.Errorf("expected one rating per turn, got %d", len(ratingRepo.ratings))
	}

	if _, err := svc.CompleteTask(context.Background(), task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	stored, _ := users.FindByID(context.Background(), owner.ID)
	if stored.TasksCompleted != 1 || stored.TotalEarnings != payoutPerTask {
		t.Errorf("owner stats wrong: %d completed, %.2f earned", stored.TasksCompleted, stored.TotalEarnings)
	}
}
