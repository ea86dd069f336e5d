package model

import (
	"context"
	"time"
)

// MaxTitleLength is the maximum task title length in characters.
const MaxTitleLength = 255

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	GetByID(ctx context.Context, id int64) (Task, error)
	GetByUserID(ctx context.Context, userID int64, order SortOrder) ([]Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64) error
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID        int64
	UserID    int64
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SortOrder selects the creation-time ordering of task listings.
type SortOrder int

const (
	// OldestFirst orders by ascending creation time.
	OldestFirst SortOrder = iota
	// NewestFirst orders by descending creation time.
	NewestFirst
)

// TaskFields carries task input. Nil fields were not supplied.
// DecodeErrors holds type errors found while decoding the request; they are
// reported only after the ownership check passes.
type TaskFields struct {
	Title        *string
	Completed    *bool
	DecodeErrors FieldErrors
}
