package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

func TestTaskRepository_CreateWithDueDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "tasks@example.com")
	ctx := context.Background()

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{UserID: user.ID, Title: "File taxes", DueOn: &due}
	if err := db.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := db.Tasks().GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.DueOn == nil {
		t.Fatal("expected due date to round-trip")
	}
	if !found.DueOn.Equal(due) {
		t.Fatalf("due date mismatch: got %v want %v", found.DueOn, due)
	}
}

func TestTaskRepository_CreateWithoutDueDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "nodue@example.com")
	ctx := context.Background()

	task := &domain.Task{UserID: user.ID, Title: "Cancel gym"}
	if err := db.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := db.Tasks().GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.DueOn != nil {
		t.Fatalf("expected nil due date, got %v", found.DueOn)
	}
}

func TestTaskRepository_ListByUser_OpenFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "tasklist@example.com")
	ctx := context.Background()

	done := &domain.Task{UserID: user.ID, Title: "Done task"}
	open := &domain.Task{UserID: user.ID, Title: "Open task"}
	if err := db.Tasks().Create(ctx, done); err != nil {
		t.Fatalf("Create done: %v", err)
	}
	if err := db.Tasks().Create(ctx, open); err != nil {
		t.Fatalf("Create open: %v", err)
	}
	if err := db.Tasks().MarkDone(ctx, done.ID); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	tasks, err := db.Tasks().ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Open task" || tasks[0].Done {
		t.Fatalf("expected open task first, got %+v", tasks[0])
	}
	if !tasks[1].Done {
		t.Fatal("expected done task last")
	}
}

func TestTaskRepository_MarkDone_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Tasks().MarkDone(context.Background(), 424242)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
