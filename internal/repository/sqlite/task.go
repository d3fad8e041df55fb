package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// TaskRepository implements domain.TaskRepository using SQLite.
type TaskRepository struct {
	db *sql.DB
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	var dueOn any
	if task.DueOn != nil {
		dueOn = task.DueOn.UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, done, due_on, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		task.UserID, task.Title, task.Done, dueOn, now,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	task.ID = id
	task.CreatedAt = now
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task := &domain.Task{}
	var dueOn sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, done, due_on, created_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Done, &dueOn, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query task by id: %w", err)
	}
	if dueOn.Valid {
		task.DueOn = &dueOn.Time
	}
	return task, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, done, due_on, created_at
		 FROM tasks WHERE user_id = ?
		 ORDER BY done ASC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks by user: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var dueOn sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &dueOn, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if dueOn.Valid {
			t.DueOn = &dueOn.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) MarkDone(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark task done: %w", err)
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

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
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
