package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// BillService handles bill tracking.
type BillService struct {
	bills domain.BillRepository
}

// NewBillService creates a new BillService.
func NewBillService(bills domain.BillRepository) *BillService {
	return &BillService{bills: bills}
}

// Create records a new unpaid bill for the given user.
func (s *BillService) Create(ctx context.Context, userID int64, name string, amountCents int64, dueOn time.Time) (*domain.Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if dueOn.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", domain.ErrInvalidInput)
	}

	bill := &domain.Bill{
		UserID:      userID,
		Name:        name,
		AmountCents: amountCents,
		DueOn:       dueOn,
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return bill, nil
}

// ListByUser returns all of the user's bills, unpaid first.
func (s *BillService) ListByUser(ctx context.Context, userID int64) ([]domain.Bill, error) {
	return s.bills.ListByUser(ctx, userID)
}

// MarkPaid marks a bill as paid after verifying ownership. Marking an
// already-paid bill again is a no-op.
func (s *BillService) MarkPaid(ctx context.Context, userID, billID int64) error {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return err
	}
	if bill.UserID != userID {
		return domain.ErrUnauthorized
	}
	return s.bills.MarkPaid(ctx, billID)
}

// Delete removes a bill after verifying ownership.
func (s *BillService) Delete(ctx context.Context, userID, billID int64) error {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return err
	}
	if bill.UserID != userID {
		return domain.ErrUnauthorized
	}
	return s.bills.Delete(ctx, billID)
}
