package handler

import (
	"net/http"

	"github.com/budgetbeyond/budget-beyond/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The limiter
// throttles the credential endpoints per client IP; a nil limiter disables
// throttling (tests).
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	verification *service.VerificationService,
	expenses *service.ExpenseService,
	bills *service.BillService,
	tasks *service.TaskService,
	limiter *service.TokenBucket,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, verification, cookieSecure)
	verifyHandler := NewVerifyHandler(auth, verification, cookieSecure)
	expenseHandler := NewExpenseHandler(expenses)
	billHandler := NewBillHandler(bills)
	taskHandler := NewTaskHandler(tasks)

	throttled := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return RateLimit(limiter, h)
	}

	// Public routes.
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleIndex)
	mux.Handle("GET /static/", StaticHandler())

	mux.HandleFunc("GET /signup", authHandler.HandleSignupPage)
	mux.Handle("POST /signup", throttled(authHandler.HandleSignup))
	mux.HandleFunc("GET /signin", authHandler.HandleSigninPage)
	mux.Handle("POST /signin", throttled(authHandler.HandleSignin))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /verify-email/{token}", verifyHandler.HandleVerifyEmail)

	// Authenticated (verification not yet required).
	mux.Handle("GET /verify-email-notice", RequireAuth(auth, http.HandlerFunc(verifyHandler.HandleVerifyNotice)))
	mux.Handle("GET /resend-verification", RequireAuth(auth, http.HandlerFunc(verifyHandler.HandleResendVerification)))

	// Authenticated and verified.
	protected := func(h http.HandlerFunc) http.Handler {
		return RequireVerified(auth, h)
	}
	mux.Handle("GET /home", protected(HandleHome))
	mux.Handle("GET /settings", protected(HandleSettings))

	mux.Handle("GET /expenses", protected(expenseHandler.HandleExpensesPage))
	mux.Handle("POST /expenses", protected(expenseHandler.HandleCreateExpense))
	mux.Handle("GET /expenses/more", protected(expenseHandler.HandleLoadMoreExpenses))

	mux.Handle("GET /bills", protected(billHandler.HandleBillsPage))
	mux.Handle("POST /bills", protected(billHandler.HandleCreateBill))
	mux.Handle("POST /bills/{id}/pay", protected(billHandler.HandleMarkBillPaid))

	mux.Handle("GET /tasks", protected(taskHandler.HandleTasksPage))
	mux.Handle("POST /tasks", protected(taskHandler.HandleCreateTask))
	mux.Handle("POST /tasks/{id}/complete", protected(taskHandler.HandleCompleteTask))
}
