package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratetask/rating-platform/internal/api/metrics"
	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

const (
	// promptWordLimit caps the number of words a tasker may type per turn.
	promptWordLimit = 60
	// payoutPerTask is the fixed amount credited per completed task.
	payoutPerTask = 5.00
	// contextSeparator joins the prior turn's AI response with the new prompt.
	contextSeparator = "\n\n"
)

// GenerationCache abstracts the response cache (Redis). Cache failures are
// never fatal; the generator is simply consulted directly.
type GenerationCache interface {
	Lookup(ctx context.Context, prompt string) (*ports.GenerationResult, bool, error)
	Store(ctx context.Context, prompt string, result *ports.GenerationResult) error
}

// TaskService implements the task/turn engine: turn progression, context
// chaining, completion and payout.
type TaskService struct {
	tasks     ports.TaskRepository
	convs     ports.ConversationRepository
	users     ports.UserRepository
	generator ports.ResponseGenerator
	cache     GenerationCache
	locks     *taskLocks
	log       zerolog.Logger
}

// NewTaskService returns a TaskService. cache may be nil to disable response
// caching.
func NewTaskService(
	tasks ports.TaskRepository,
	convs ports.ConversationRepository,
	users ports.UserRepository,
	generator ports.ResponseGenerator,
	cache GenerationCache,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		convs:     convs,
		users:     users,
		generator: generator,
		cache:     cache,
		locks:     newTaskLocks(),
		log:       log,
	}
}

// CreateTask starts a new evaluation session at turn 1.
func (s *TaskService) CreateTask(ctx context.Context, ownerUserID string) (*domain.Task, error) {
	task := &domain.Task{
		UserID:      ownerUserID,
		Completed:   false,
		CurrentTurn: 1,
		MaxTurns:    domain.DefaultMaxTurns,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("user_id", ownerUserID).Msg("task created")
	return task, nil
}

// SubmitTurn processes one prompt submission for the task's current turn.
//
// The whole read-chain-generate-persist-advance sequence runs under the
// task's lock: the next turn's chaining depends on this turn's conversation
// existing, so two in-flight submissions for one task may not overlap at
// all. The generator call is inside that critical section on purpose; it
// only ever blocks submissions for the same task.
func (s *TaskService) SubmitTurn(ctx context.Context, input ports.SubmitTurnInput) (*ports.SubmitTurnResult, error) {
	if err := validatePrompt(input.Prompt); err != nil {
		return nil, err
	}

	// Submissions without a task start a fresh anonymous one.
	var task *domain.Task
	if input.TaskID == "" {
		created, err := s.CreateTask(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		task = created
	}

	taskID := input.TaskID
	if task != nil {
		taskID = task.ID
	}

	release := s.locks.Acquire(taskID)
	defer release()

	if task == nil {
		found, err := s.tasks.FindByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		task = found
	}

	if !task.TurnAvailable() {
		metrics.TurnsSubmittedTotal.WithLabelValues("exhausted").Inc()
		return nil, domain.ErrTaskExhausted
	}

	turn := task.CurrentTurn
	effectivePrompt := s.buildEffectivePrompt(ctx, task, input.Prompt)

	result, err := s.generate(ctx, effectivePrompt)
	if err != nil {
		metrics.TurnsSubmittedTotal.WithLabelValues("generation_failed").Inc()
		s.log.Error().Err(err).Str("task_id", taskID).Int("turn", turn).Msg("generation failed, turn not consumed")
		return nil, err
	}

	conv := &domain.Conversation{
		TaskID:     taskID,
		UserID:     input.UserID,
		Turn:       turn,
		UserPrompt: input.Prompt,
		AIResponse: result.Response,
		WordCount:  result.WordCount,
		CreatedAt:  time.Now().UTC(),
	}

	// The conversation must be durable before the advanced turn counter is
	// visible: a reader must never observe current_turn = k+1 without a
	// turn-k conversation.
	if err := s.convs.Create(ctx, conv); err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).Int("turn", turn).Msg("failed to persist conversation")
		return nil, err
	}

	updated, err := s.tasks.AdvanceTurn(ctx, taskID, turn)
	if err != nil {
		metrics.TurnsSubmittedTotal.WithLabelValues("conflict").Inc()
		return nil, err
	}

	metrics.TurnsSubmittedTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("task_id", taskID).
		Int("turn", turn).
		Int("word_count", result.WordCount).
		Msg("turn submitted")

	return &ports.SubmitTurnResult{Task: updated, Conversation: conv}, nil
}

// CompleteTask closes the task and credits the owner. Completion is a
// terminal state: a second call returns the task unchanged and performs no
// side effects, so the payout can never double-credit.
//
// The engine does not verify that all turns and ratings are present; that
// gating belongs to the caller, and admins rely on it to close
// partially-reviewed tasks.
func (s *TaskService) CompleteTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, transitioned, err := s.tasks.MarkCompleted(ctx, taskID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !transitioned {
		s.log.Debug().Str("task_id", taskID).Msg("task already completed, no-op")
		return task, nil
	}

	if task.UserID != "" {
		if err := s.users.CreditCompletion(ctx, task.UserID, payoutPerTask); err != nil {
			s.log.Error().Err(err).Str("task_id", taskID).Str("user_id", task.UserID).Msg("failed to credit completion")
			return nil, err
		}
	}

	metrics.TasksCompletedTotal.Inc()
	s.log.Info().Str("task_id", taskID).Str("user_id", task.UserID).Msg("task completed")
	return task, nil
}

// buildEffectivePrompt chains the prior turn's AI response in front of the
// typed prompt. Turn 1, or a missing prior conversation (inconsistent state,
// the context is simply unrecoverable), degrades to the bare prompt.
func (s *TaskService) buildEffectivePrompt(ctx context.Context, task *domain.Task, prompt string) string {
	if task.CurrentTurn <= 1 {
		return prompt
	}

	prev, err := s.convs.FindByTaskTurn(ctx, task.ID, task.CurrentTurn-1)
	if err != nil {
		s.log.Warn().
			Str("task_id", task.ID).
			Int("turn", task.CurrentTurn-1).
			Msg("previous conversation missing, falling back to bare prompt")
		return prompt
	}

	return prev.AIResponse + contextSeparator + prompt
}

// generate consults the cache first and falls back to the generator. The
// result is cached best-effort.
func (s *TaskService) generate(ctx context.Context, prompt string) (*ports.GenerationResult, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Lookup(ctx, prompt)
		if err != nil {
			s.log.Warn().Err(err).Msg("generation cache lookup failed, calling generator")
		} else if ok {
			metrics.GenerationCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.GenerationCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.GenerationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	metrics.GenerationDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	if s.cache != nil {
		if err := s.cache.Store(ctx, prompt, result); err != nil {
			s.log.Warn().Err(err).Msg("failed to store generation cache entry")
		}
	}

	return result, nil
}

// validatePrompt enforces the non-empty, at most promptWordLimit words rule.
func validatePrompt(prompt string) error {
	words := domain.WordCount(prompt)
	if words == 0 {
		return domain.NewValidationError("prompt is required")
	}
	if words > promptWordLimit {
		return domain.NewValidationError(fmt.Sprintf("prompt must not exceed %d words", promptWordLimit))
	}
	return nil
}
