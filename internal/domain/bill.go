package domain

import (
	"context"
	"time"
)

// Bill is a recurring or one-off payment obligation with a due date.
type Bill struct {
	ID          int64
	UserID      int64
	Name        string
	AmountCents int64
	DueOn       time.Time
	Paid        bool
	CreatedAt   time.Time
}

// BillRepository defines persistence operations for bills.
type BillRepository interface {
	Create(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, id int64) (*Bill, error)
	ListByUser(ctx context.Context, userID int64) ([]Bill, error)
	// MarkPaid flips paid to true. Repeating it is a no-op.
	MarkPaid(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
