package view_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/view"
)

func TestRenderSignupPage(t *testing.T) {
	rec := httptest.NewRecorder()

	view.Render(rec, "signup", view.Page{
		Title:  "Sign Up",
		Errors: []string{"passwords do not match"},
		Form:   map[string]string{"email": "alice@example.com"},
	})

	body := rec.Body.String()
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(body, "passwords do not match") {
		t.Fatal("expected validation error in body")
	}
	if !strings.Contains(body, `value="alice@example.com"`) {
		t.Fatal("expected submitted email to be preserved in the form")
	}
}

func TestExpenseRowsHTML(t *testing.T) {
	rows, err := view.ExpenseRowsHTML([]domain.Expense{
		{
			ID:          1,
			Description: "Groceries",
			Category:    "food",
			AmountCents: 4550,
			IncurredOn:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
	})
	if err != nil {
		t.Fatalf("ExpenseRowsHTML: %v", err)
	}
	if !strings.Contains(rows, "Groceries") {
		t.Fatal("expected description in rendered rows")
	}
	if !strings.Contains(rows, "$45.50") {
		t.Fatalf("expected formatted amount, got %q", rows)
	}
	if !strings.Contains(rows, "Aug 30, 2026") {
		t.Fatalf("expected formatted date, got %q", rows)
	}
}

func TestExpensesLoadMoreHTML(t *testing.T) {
	withMore, err := view.ExpensesLoadMoreHTML(25, 10)
	if err != nil {
		t.Fatalf("ExpensesLoadMoreHTML: %v", err)
	}
	if !strings.Contains(withMore, "offset=10") {
		t.Fatalf("expected next offset in load-more control, got %q", withMore)
	}

	exhausted, err := view.ExpensesLoadMoreHTML(25, 30)
	if err != nil {
		t.Fatalf("ExpensesLoadMoreHTML: %v", err)
	}
	if strings.Contains(exhausted, "offset=") {
		t.Fatalf("expected no load-more button once everything is loaded, got %q", exhausted)
	}
}
