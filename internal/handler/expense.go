package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/budgetbeyond/budget-beyond/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

const expensePageSize = 10

// ExpenseHandler handles the expenses page.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// HandleExpensesPage renders the expense form and the first page of the
// user's expenses.
// GET /expenses (authenticated + verified)
func (h *ExpenseHandler) HandleExpensesPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	expenses, err := h.expenses.ListByUser(r.Context(), user.ID, expensePageSize, 0)
	if err != nil {
		slog.Error("list expenses", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	total, err := h.expenses.CountByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("count expenses", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.Render(w, "expenses", view.Page{
		Title:    "Expenses",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
		Data: view.ExpensesData{
			Expenses:   expenses,
			Total:      total,
			NextOffset: expensePageSize,
			HasMore:    total > expensePageSize,
		},
	})
}

// HandleCreateExpense records a new expense for the signed-in user.
// POST /expenses (authenticated + verified)
func (h *ExpenseHandler) HandleCreateExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	amountCents, err := parseAmount(r.PostFormValue("amount"))
	if err != nil {
		setFlash(w, "error", "Please enter a valid amount, like 12.34.")
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}

	incurredOn, _ := parseDate(r.PostFormValue("incurred_on"))

	_, err = h.expenses.Create(r.Context(), user.ID,
		r.PostFormValue("description"), r.PostFormValue("category"),
		amountCents, incurredOn,
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			setFlash(w, "error", strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
		} else {
			slog.Error("create expense", "error", err)
			setFlash(w, "error", "Could not save the expense. Please try again.")
		}
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Expense added.")
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

// HandleLoadMoreExpenses appends the next page of expense rows via SSE.
// GET /expenses/more (authenticated + verified)
func (h *ExpenseHandler) HandleLoadMoreExpenses(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	expenses, err := h.expenses.ListByUser(r.Context(), user.ID, expensePageSize, offset)
	if err != nil {
		slog.Error("load more expenses", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	total, err := h.expenses.CountByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("count expenses", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rows, err := view.ExpenseRowsHTML(expenses)
	if err != nil {
		slog.Error("render expense rows", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	loadMore, err := view.ExpensesLoadMoreHTML(total, offset+expensePageSize)
	if err != nil {
		slog.Error("render load-more control", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	// Append new rows to the table body.
	sse.PatchElements(rows,
		datastar.WithSelectorID("expense-list"),
		datastar.WithModeAppend(),
	)

	// Replace the load-more button (updates count or removes it).
	sse.PatchElements(loadMore)
}

// parseAmount converts a decimal money string like "12.34" into cents.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	return dollars*100 + cents, nil
}

// parseDate parses an HTML date input value. An empty or malformed value
// returns the zero time, letting the service pick a default.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
