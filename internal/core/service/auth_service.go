package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratetask/rating-platform/internal/core/domain"
	"github.com/ratetask/rating-platform/internal/core/ports"
)

const minCredentialLength = 3

// AuthService implements registration and login. Registration always creates
// a tasker; the only admin account is the seeded one.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	var fields []string
	if len(username) < minCredentialLength {
		fields = append(fields, "username must be at least 3 characters long")
	}
	if len(password) < minCredentialLength {
		fields = append(fields, "password must be at least 3 characters long")
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleTasker,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// SeedDemoUsers inserts the demo admin and tasker accounts when absent. The
// demo tasker ships with a pre-loaded completion history.
func SeedDemoUsers(ctx context.Context, repo ports.UserRepository, log zerolog.Logger) error {
	seeds := []struct {
		username       string
		password       string
		role           string
		tasksCompleted int
		totalEarnings  float64
	}{
		{"admin", "admin", domain.RoleAdmin, 0, 0},
		{"tasker", "tasker", domain.RoleTasker, 15, 75.00},
	}

	for _, seed := range seeds {
		if _, err := repo.FindByUsername(ctx, seed.username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &domain.User{
			Username:       seed.username,
			PasswordHash:   string(hash),
			Role:           seed.role,
			TasksCompleted: seed.tasksCompleted,
			TotalEarnings:  seed.totalEarnings,
			CreatedAt:      time.Now().UTC(),
		}
		if err := repo.Create(ctx, user); err != nil && !errors.Is(err, domain.ErrUserExists) {
			return err
		}
		log.Info().Str("username", seed.username).Str("role", seed.role).Msg("seeded demo user")
	}

	return nil
}
