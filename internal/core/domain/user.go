package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleTasker = "tasker"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an authenticated actor. TasksCompleted and TotalEarnings are
// mutated only by task completion; both are monotonically non-decreasing.
type User struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Username       string    `json:"username" bson:"username"`
	PasswordHash   string    `json:"-" bson:"password_hash"`
	Role           string    `json:"role" bson:"role"`
	TasksCompleted int       `json:"tasks_completed" bson:"tasks_completed"`
	TotalEarnings  float64   `json:"total_earnings" bson:"total_earnings"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// UnknownUser is the sentinel substituted by read models when a task points
// at a user that no longer resolves.
func UnknownUser() *User {
	return &User{Username: "Unknown", Role: "unknown"}
}
