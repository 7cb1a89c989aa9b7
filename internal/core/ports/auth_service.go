package ports

import (
	"context"

	"github.com/ratetask/rating-platform/internal/core/domain"
)

// AuthService defines registration and login. Registration always produces a
// tasker; admin accounts are only seeded.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
}
