package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/budgetbeyond/budget-beyond/internal/view"
)

// msgLinkInvalid covers both expired and tampered links so the response
// does not reveal which check failed.
const msgLinkInvalid = "The verification link is invalid or has expired. Please request a new one."

// VerifyHandler handles the email-verification flows.
type VerifyHandler struct {
	auth         *service.AuthService
	verification *service.VerificationService
	cookieSecure bool
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(auth *service.AuthService, verification *service.VerificationService, cookieSecure bool) *VerifyHandler {
	return &VerifyHandler{auth: auth, verification: verification, cookieSecure: cookieSecure}
}

// HandleVerifyNotice shows the "check your email" page. Already-verified
// users are sent home.
// GET /verify-email-notice (authenticated)
func (h *VerifyHandler) HandleVerifyNotice(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user.EmailVerified {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	view.Render(w, "verify_notice", view.Page{
		Title:    "Verify Your Email",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
	})
}

// HandleVerifyEmail redeems a verification link. Redeeming an already-used
// link is harmless; redeeming an invalid or expired one lands on sign-in
// with a generic message. A sessionless visitor who verifies gets signed in.
// GET /verify-email/{token}
func (h *VerifyHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	tokenString := r.PathValue("token")

	user, alreadyVerified, err := h.verification.VerifyEmail(r.Context(), tokenString)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenInvalid) && !errors.Is(err, domain.ErrTokenExpired) {
			slog.Error("verify email", "error", err)
		}
		setFlash(w, "error", msgLinkInvalid)
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	if alreadyVerified {
		setFlash(w, "info", "Your email has already been verified. You can now access your account.")
	} else {
		setFlash(w, "success", "Email verified successfully! Welcome to Budget Beyond!")
	}

	// Log the user in if they arrived without a session (e.g. clicked the
	// link in a different browser).
	if _, authErr := authenticateRequest(r, h.auth); authErr != nil {
		token, err := h.auth.StartSession(user)
		if err != nil {
			slog.Error("start session after verification", "error", err)
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		setSessionCookie(w, token, h.cookieSecure)
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleResendVerification issues and sends a fresh verification link for
// the signed-in user. Old links stay valid until they expire.
// GET /resend-verification (authenticated)
func (h *VerifyHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	delivered, alreadyVerified := h.verification.Resend(r.Context(), user)
	if alreadyVerified {
		setFlash(w, "info", "Your email is already verified.")
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	if delivered {
		setFlash(w, "info", "Verification email has been resent. Please check your inbox.")
	} else {
		setFlash(w, "error", "Failed to send verification email. Please try again later.")
	}

	http.Redirect(w, r, "/verify-email-notice", http.StatusSeeOther)
}
