package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user and assigns its ID. Fails with
	// domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreditCompletion atomically increments tasks_completed by 1 and
	// total_earnings by payout in a single update, so concurrent completions
	// crediting the same user never read stale stats.
	CreditCompletion(ctx context.Context, userID string, payout float64) error
}
