package domain

import (
	"context"
	"time"
)

// Expense is a single spend recorded by a user.
// Amounts are stored in cents to avoid floating-point drift.
type Expense struct {
	ID          int64
	UserID      int64
	Description string
	AmountCents int64
	Category    string
	IncurredOn  time.Time
	CreatedAt   time.Time
}

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	GetByID(ctx context.Context, id int64) (*Expense, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Expense, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
