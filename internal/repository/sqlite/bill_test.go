package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
)

func TestBillRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "bills@example.com")
	ctx := context.Background()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	bill := &domain.Bill{
		UserID:      user.ID,
		Name:        "Rent",
		AmountCents: 120000,
		DueOn:       due,
	}
	if err := db.Bills().Create(ctx, bill); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bill.ID == 0 {
		t.Fatal("expected bill ID to be set")
	}

	bills, err := db.Bills().ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(bills))
	}
	if bills[0].Name != "Rent" || bills[0].Paid {
		t.Fatalf("unexpected bill: %+v", bills[0])
	}
}

func TestBillRepository_ListByUser_UnpaidFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "ordering@example.com")
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	paid := &domain.Bill{UserID: user.ID, Name: "Paid", AmountCents: 100, DueOn: due}
	unpaid := &domain.Bill{UserID: user.ID, Name: "Unpaid", AmountCents: 200, DueOn: due.AddDate(0, 0, 10)}

	if err := db.Bills().Create(ctx, paid); err != nil {
		t.Fatalf("Create paid: %v", err)
	}
	if err := db.Bills().Create(ctx, unpaid); err != nil {
		t.Fatalf("Create unpaid: %v", err)
	}
	if err := db.Bills().MarkPaid(ctx, paid.ID); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	bills, err := db.Bills().ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}
	if bills[0].Name != "Unpaid" {
		t.Fatalf("expected unpaid bill first, got %q", bills[0].Name)
	}
}

func TestBillRepository_MarkPaid_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "paytwice@example.com")
	ctx := context.Background()

	bill := &domain.Bill{
		UserID:      user.ID,
		Name:        "Power",
		AmountCents: 8300,
		DueOn:       time.Now().UTC(),
	}
	if err := db.Bills().Create(ctx, bill); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := db.Bills().MarkPaid(ctx, bill.ID); err != nil {
		t.Fatalf("first MarkPaid: %v", err)
	}
	if err := db.Bills().MarkPaid(ctx, bill.ID); err != nil {
		t.Fatalf("second MarkPaid should be a no-op, got %v", err)
	}

	found, err := db.Bills().GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !found.Paid {
		t.Fatal("expected bill to be paid")
	}
}

func TestBillRepository_MarkPaid_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Bills().MarkPaid(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
