package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
)

func TestExpenseService_Create(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerTestUser(t, auth, "spend@example.com")
	expenses := service.NewExpenseService(db.Expenses())
	ctx := context.Background()

	expense, err := expenses.Create(ctx, user.ID, "Groceries", "food", 4550, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if expense.ID == 0 {
		t.Fatal("expected expense ID to be set")
	}
	if expense.AmountCents != 4550 {
		t.Fatalf("amount mismatch: %d", expense.AmountCents)
	}
}

func TestExpenseService_Create_DefaultsIncurredOn(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerTestUser(t, auth, "today@example.com")
	expenses := service.NewExpenseService(db.Expenses())

	expense, err := expenses.Create(context.Background(), user.ID, "Coffee", "", 450, time.Time{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if expense.IncurredOn.IsZero() {
		t.Fatal("expected incurred date to default to now")
	}
}

func TestExpenseService_Create_Validation(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerTestUser(t, auth, "bad@example.com")
	expenses := service.NewExpenseService(db.Expenses())
	ctx := context.Background()

	if _, err := expenses.Create(ctx, user.ID, "  ", "food", 100, time.Time{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank description: expected ErrInvalidInput, got %v", err)
	}
	if _, err := expenses.Create(ctx, user.ID, "Groceries", "food", 0, time.Time{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero amount: expected ErrInvalidInput, got %v", err)
	}
	if _, err := expenses.Create(ctx, user.ID, "Groceries", "food", -100, time.Time{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative amount: expected ErrInvalidInput, got %v", err)
	}
}

func TestExpenseService_Delete_OwnershipEnforced(t *testing.T) {
	auth, db := newAuthService(t)
	owner := registerTestUser(t, auth, "owner@example.com")
	other, err := auth.Register(context.Background(), "Eve", "Intruder", "eve@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	expenses := service.NewExpenseService(db.Expenses())
	ctx := context.Background()

	expense, err := expenses.Create(ctx, owner.ID, "Groceries", "food", 4550, time.Time{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := expenses.Delete(ctx, other.ID, expense.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign expense, got %v", err)
	}

	// Still there for the owner.
	if _, err := db.Expenses().GetByID(ctx, expense.ID); err != nil {
		t.Fatalf("expense should survive a rejected delete: %v", err)
	}

	if err := expenses.Delete(ctx, owner.ID, expense.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestBillService_MarkPaid_OwnershipEnforced(t *testing.T) {
	auth, db := newAuthService(t)
	owner := registerTestUser(t, auth, "billowner@example.com")
	other, err := auth.Register(context.Background(), "Eve", "Intruder", "eve2@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	bills := service.NewBillService(db.Bills())
	ctx := context.Background()

	bill, err := bills.Create(ctx, owner.ID, "Rent", 120000, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := bills.MarkPaid(ctx, other.ID, bill.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign bill, got %v", err)
	}

	stored, err := db.Bills().GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Paid {
		t.Fatal("bill must stay unpaid after a rejected mark")
	}

	if err := bills.MarkPaid(ctx, owner.ID, bill.ID); err != nil {
		t.Fatalf("owner MarkPaid: %v", err)
	}
}

func TestTaskService_MarkDone_OwnershipEnforced(t *testing.T) {
	auth, db := newAuthService(t)
	owner := registerTestUser(t, auth, "taskowner@example.com")
	other, err := auth.Register(context.Background(), "Eve", "Intruder", "eve3@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	tasks := service.NewTaskService(db.Tasks())
	ctx := context.Background()

	task, err := tasks.Create(ctx, owner.ID, "Pay rent", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := tasks.MarkDone(ctx, other.ID, task.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign task, got %v", err)
	}

	if err := tasks.MarkDone(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("owner MarkDone: %v", err)
	}
}

func TestTaskService_Create_RequiresTitle(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerTestUser(t, auth, "title@example.com")
	tasks := service.NewTaskService(db.Tasks())

	if _, err := tasks.Create(context.Background(), user.ID, "   ", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
