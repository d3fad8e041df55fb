package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/budgetbeyond/budget-beyond/internal/view"
)

// User-facing messages. The sign-in failure message is a single generic
// string for both unknown email and wrong password.
const (
	msgInvalidCredentials = "Invalid email or password. Please try again."
	msgRegistrationFailed = "An error occurred while creating your account. Please try again."
	msgSignupSent         = "Account created successfully! Please check your email and click the verification link to complete your registration."
	msgSignupNotSent      = "Account created successfully! However, we could not send the verification email. Please use the resend link below."
)

// AuthHandler handles registration, sign-in, and sign-out.
type AuthHandler struct {
	auth         *service.AuthService
	verification *service.VerificationService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, verification *service.VerificationService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, verification: verification, cookieSecure: cookieSecure}
}

// HandleSignupPage renders the registration form.
// GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	view.Render(w, "signup", view.Page{
		Title: "Sign Up",
		Flash: popFlash(w, r),
		Form:  map[string]string{},
	})
}

// HandleSignup processes a registration form submission. On success the
// user gets a session immediately — before verification — so they can reach
// the verify-email notice and trigger a resend.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := map[string]string{
		"first_name": strings.TrimSpace(r.PostFormValue("first_name")),
		"last_name":  strings.TrimSpace(r.PostFormValue("last_name")),
		"email":      strings.TrimSpace(r.PostFormValue("email")),
	}

	user, err := h.auth.Register(r.Context(),
		form["first_name"], form["last_name"], form["email"],
		r.PostFormValue("password"), r.PostFormValue("confirm_password"),
	)
	if err != nil {
		h.renderSignupError(w, r, form, err)
		return
	}

	token, err := h.auth.StartSession(user)
	if err != nil {
		slog.Error("start session after signup", "error", err)
		h.renderSignupError(w, r, form, err)
		return
	}
	setSessionCookie(w, token, h.cookieSecure)

	// Delivery is best-effort: a failed send downgrades the message but the
	// account exists either way.
	if h.verification.SendVerification(r.Context(), user) {
		setFlash(w, "info", msgSignupSent)
	} else {
		setFlash(w, "warning", msgSignupNotSent)
	}

	http.Redirect(w, r, "/verify-email-notice", http.StatusSeeOther)
}

func (h *AuthHandler) renderSignupError(w http.ResponseWriter, r *http.Request, form map[string]string, err error) {
	var message string
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		message = "Email address already exists. Please use a different email."
	case errors.Is(err, domain.ErrInvalidInput):
		message = strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	default:
		slog.Error("register user", "error", err)
		message = msgRegistrationFailed
	}

	view.Render(w, "signup", view.Page{
		Title:  "Sign Up",
		Errors: []string{message},
		Form:   form,
	})
}

// HandleSigninPage renders the sign-in form.
// GET /signin
func (h *AuthHandler) HandleSigninPage(w http.ResponseWriter, r *http.Request) {
	view.Render(w, "signin", view.Page{
		Title: "Sign In",
		Flash: popFlash(w, r),
		Form:  map[string]string{},
	})
}

// HandleSignin processes a sign-in form submission. Verification state is
// not consulted here; unverified users are gated lazily on protected pages.
// POST /signin
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	user, err := h.auth.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			slog.Error("login user", "error", err)
		}
		view.Render(w, "signin", view.Page{
			Title:  "Sign In",
			Errors: []string{msgInvalidCredentials},
			Form:   map[string]string{"email": email},
		})
		return
	}

	token, err := h.auth.StartSession(user)
	if err != nil {
		slog.Error("start session after signin", "error", err)
		view.Render(w, "signin", view.Page{
			Title:  "Sign In",
			Errors: []string{"An unexpected error occurred. Please try again."},
			Form:   map[string]string{"email": email},
		})
		return
	}
	setSessionCookie(w, token, h.cookieSecure)

	setFlash(w, "success", "Login successful! Welcome back!")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLogout clears the session unconditionally.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cookieSecure)
	setFlash(w, "info", "You have been logged out successfully.")
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
