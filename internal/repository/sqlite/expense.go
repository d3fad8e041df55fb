package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using SQLite.
type ExpenseRepository struct {
	db *sql.DB
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, description, amount_cents, category, incurred_on, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.UserID, expense.Description, expense.AmountCents, expense.Category, expense.IncurredOn.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	expense.ID = id
	expense.CreatedAt = now
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	expense := &domain.Expense{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, description, amount_cents, category, incurred_on, created_at
		 FROM expenses WHERE id = ?`, id,
	).Scan(&expense.ID, &expense.UserID, &expense.Description, &expense.AmountCents,
		&expense.Category, &expense.IncurredOn, &expense.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query expense by id: %w", err)
	}
	return expense, nil
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, description, amount_cents, category, incurred_on, created_at
		 FROM expenses WHERE user_id = ?
		 ORDER BY incurred_on DESC, id DESC
		 LIMIT ? OFFSET ?`, userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses by user: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.AmountCents,
			&e.Category, &e.IncurredOn, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expenses by user: %w", err)
	}
	return count, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
