package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/budgetbeyond/budget-beyond/internal/view"
)

// BillHandler handles the bills page.
type BillHandler struct {
	bills *service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(bills *service.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// HandleBillsPage renders the bill form and the user's bills.
// GET /bills (authenticated + verified)
func (h *BillHandler) HandleBillsPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	bills, err := h.bills.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list bills", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.Render(w, "bills", view.Page{
		Title:    "Bills",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
		Data:     view.BillsData{Bills: bills},
	})
}

// HandleCreateBill records a new bill for the signed-in user.
// POST /bills (authenticated + verified)
func (h *BillHandler) HandleCreateBill(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	amountCents, err := parseAmount(r.PostFormValue("amount"))
	if err != nil {
		setFlash(w, "error", "Please enter a valid amount, like 59.99.")
		http.Redirect(w, r, "/bills", http.StatusSeeOther)
		return
	}

	dueOn, err := parseDate(r.PostFormValue("due_on"))
	if err != nil || dueOn.IsZero() {
		setFlash(w, "error", "Please enter a valid due date.")
		http.Redirect(w, r, "/bills", http.StatusSeeOther)
		return
	}

	_, err = h.bills.Create(r.Context(), user.ID, r.PostFormValue("name"), amountCents, dueOn)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			setFlash(w, "error", strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
		} else {
			slog.Error("create bill", "error", err)
			setFlash(w, "error", "Could not save the bill. Please try again.")
		}
		http.Redirect(w, r, "/bills", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Bill added.")
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}

// HandleMarkBillPaid marks one of the user's bills as paid.
// POST /bills/{id}/pay (authenticated + verified)
func (h *BillHandler) HandleMarkBillPaid(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	billID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.bills.MarkPaid(r.Context(), user.ID, billID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, domain.ErrUnauthorized):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			slog.Error("mark bill paid", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "success", "Bill marked as paid.")
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}
