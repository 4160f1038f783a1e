package domain

import (
	"context"
	"time"
)

// UserType is the role carried by an account.
type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Type         UserType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may edit content.
func (u *User) IsAdmin() bool {
	return u != nil && u.Type == UserTypeAdmin
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
