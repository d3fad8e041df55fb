package domain

import (
	"context"
	"time"
)

// Task is a to-do item on a user's list.
type Task struct {
	ID        int64
	UserID    int64
	Title     string
	Done      bool
	DueOn     *time.Time
	CreatedAt time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	ListByUser(ctx context.Context, userID int64) ([]Task, error)
	// MarkDone flips done to true. Repeating it is a no-op.
	MarkDone(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
