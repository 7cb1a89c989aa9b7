package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = fmt.Sprintf("task-%d", r.nextID)
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// AdvanceTurn mirrors the Mongo compare-and-swap: the stored turn must still
// equal fromTurn.
func (r *stubTaskRepo) AdvanceTurn(_ context.Context, id string, fromTurn int) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if t.Completed || t.CurrentTurn != fromTurn {
		return nil, domain.ErrTurnConflict
	}
	t.CurrentTurn++
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) MarkCompleted(_ context.Context, id string, at time.Time) (*domain.Task, bool, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, false, domain.ErrTaskNotFound
	}
	if t.Completed {
		clone := *t
		return &clone, false, nil
	}
	t.Completed = true
	t.CompletedAt = &at
	clone := *t
	return &clone, true, nil
}

func (r *stubTaskRepo) List(_ context.Context) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) FindByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type stubConversationRepo struct {
	convs     map[string]*domain.Conversation
	nextID    int
	createErr error
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{convs: make(map[string]*domain.Conversation)}
}

func (r *stubConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	conv.ID = fmt.Sprintf("conv-%d", r.nextID)
	clone := *conv
	r.convs[conv.ID] = &clone
	return nil
}

func (r *stubConversationRepo) FindByID(_ context.Context, id string) (*domain.Conversation, error) {
	c, ok := r.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConversationRepo) FindByTask(_ context.Context, taskID string) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, c := range r.convs {
		if c.TaskID == taskID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out, nil
}

func (r *stubConversationRepo) FindByTaskTurn(_ context.Context, taskID string, turn int) (*domain.Conversation, error) {
	for _, c := range r.convs {
		if c.TaskID == taskID && c.Turn == turn {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrConversationNotFound
}

func (r *stubConversationRepo) UpdateResponse(_ context.Context, id, aiResponse string, wordCount int) (*domain.Conversation, error) {
	c, ok := r.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	c.AIResponse = aiResponse
	c.WordCount = wordCount
	clone := *c
	return &clone, nil
}

func (r *stubConversationRepo) FindByUser(_ context.Context, userID string) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, c := range r.convs {
		if c.UserID == userID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out, nil
}

type stubRatingRepo struct {
	ratings map[string]*domain.Rating
	nextID  int
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[string]*domain.Rating)}
}

func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	r.nextID++
	rating.ID = fmt.Sprintf("rating-%d", r.nextID)
	clone := *rating
	r.ratings[rating.ID] = &clone
	return nil
}

func (r *stubRatingRepo) FindByID(_ context.Context, id string) (*domain.Rating, error) {
	rt, ok := r.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	clone := *rt
	return &clone, nil
}

func (r *stubRatingRepo) FindByConversation(_ context.Context, conversationID string) (*domain.Rating, error) {
	for _, rt := range r.ratings {
		if rt.ConversationID == conversationID {
			clone := *rt
			return &clone, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) Update(_ context.Context, id string, update ports.RatingUpdate) (*domain.Rating, error) {
	rt, ok := r.ratings[id]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	if update.Accuracy != nil {
		rt.Accuracy = *update.Accuracy
	}
	if update.Clarity != nil {
		rt.Clarity = *update.Clarity
	}
	if update.Relevance != nil {
		rt.Relevance = *update.Relevance
	}
	if update.Consistency != nil {
		rt.Consistency = *update.Consistency
	}
	if update.Completeness != nil {
		rt.Completeness = *update.Completeness
	}
	if update.Comments != nil {
		rt.Comments = *update.Comments
	}
	clone := *rt
	return &clone, nil
}

func (r *stubRatingRepo) FindByUser(_ context.Context, userID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.ratings {
		if rt.UserID == userID {
			clone := *rt
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	credits []string // userIDs passed to CreditCompletion, in order
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) CreditCompletion(_ context.Context, userID string, payout float64) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.TasksCompleted++
	u.TotalEarnings += payout
	r.credits = append(r.credits, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Stub generator and cache
// ---------------------------------------------------------------------------

// stubGenerator echoes the prompt it was handed so tests can assert the
// effective prompt that reached the model.
type stubGenerator struct {
	prompts []string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (*ports.GenerationResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.prompts = append(g.prompts, prompt)
	response := "echo: " + prompt
	return &ports.GenerationResult{Response: response, WordCount: domain.WordCount(response)}, nil
}

type stubCache struct {
	entries map[string]*ports.GenerationResult
	lookups int
	stores  int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*ports.GenerationResult)}
}

func (c *stubCache) Lookup(_ context.Context, prompt string) (*ports.GenerationResult, bool, error) {
	c.lookups++
	res, ok := c.entries[prompt]
	return res, ok, nil
}

func (c *stubCache) Store(_ context.Context, prompt string, result *ports.GenerationResult) error {
	c.stores++
	c.entries[prompt] = result
	return nil
}
