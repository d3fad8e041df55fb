package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

// TaskService handles the to-do list.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create adds a new task to the user's list. dueOn is optional.
func (s *TaskService) Create(ctx context.Context, userID int64, title string, dueOn *time.Time) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		UserID: userID,
		Title:  title,
		DueOn:  dueOn,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListByUser returns all of the user's tasks, open ones first.
func (s *TaskService) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

// MarkDone completes a task after verifying ownership. Completing an
// already-done task again is a no-op.
func (s *TaskService) MarkDone(ctx context.Context, userID, taskID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrUnauthorized
	}
	return s.tasks.MarkDone(ctx, taskID)
}

// Delete removes a task after verifying ownership.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrUnauthorized
	}
	return s.tasks.Delete(ctx, taskID)
}
