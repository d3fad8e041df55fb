package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// BillRepository implements domain.BillRepository using SQLite.
type BillRepository struct {
	db *sql.DB
}

func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO bills (user_id, name, amount_cents, due_on, paid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bill.UserID, bill.Name, bill.AmountCents, bill.DueOn.UTC(), bill.Paid, now,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	bill.ID = id
	bill.CreatedAt = now
	return nil
}

func (r *BillRepository) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	bill := &domain.Bill{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, amount_cents, due_on, paid, created_at
		 FROM bills WHERE id = ?`, id,
	).Scan(&bill.ID, &bill.UserID, &bill.Name, &bill.AmountCents, &bill.DueOn, &bill.Paid, &bill.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query bill by id: %w", err)
	}
	return bill, nil
}

func (r *BillRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount_cents, due_on, paid, created_at
		 FROM bills WHERE user_id = ?
		 ORDER BY paid ASC, due_on ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bills by user: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.AmountCents, &b.DueOn, &b.Paid, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *BillRepository) MarkPaid(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bills SET paid = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark bill paid: %w", err)
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

func (r *BillRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
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
