package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// ExpenseService handles expense recording and listing.
type ExpenseService struct {
	expenses domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// Create records a new expense for the given user.
func (s *ExpenseService) Create(ctx context.Context, userID int64, description, category string, amountCents int64, incurredOn time.Time) (*domain.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if incurredOn.IsZero() {
		incurredOn = time.Now().UTC()
	}

	expense := &domain.Expense{
		UserID:      userID,
		Description: description,
		AmountCents: amountCents,
		Category:    strings.TrimSpace(category),
		IncurredOn:  incurredOn,
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// ListByUser returns a page of the user's expenses, newest first.
func (s *ExpenseService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Expense, error) {
	return s.expenses.ListByUser(ctx, userID, limit, offset)
}

// CountByUser returns the total number of expenses the user has recorded.
func (s *ExpenseService) CountByUser(ctx context.Context, userID int64) (int, error) {
	return s.expenses.CountByUser(ctx, userID)
}

// Delete removes an expense after verifying ownership. A mismatched owner
// fails closed with domain.ErrUnauthorized.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int64) error {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.UserID != userID {
		return domain.ErrUnauthorized
	}
	return s.expenses.Delete(ctx, expenseID)
}
