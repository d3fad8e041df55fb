package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenMaxAge is how long an emailed verification link stays valid.
const DefaultTokenMaxAge = time.Hour

const verificationPurpose = "email-verification"

// VerificationService issues and redeems the signed, time-limited tokens
// carried in verification links, and drives the verify/resend transitions.
//
// Tokens are self-validating: nothing is stored server-side and nothing can
// be revoked early. Resending simply issues an independent token, so several
// valid links for one user may coexist until they age out.
type VerificationService struct {
	users   domain.UserRepository
	mailer  domain.Mailer
	secret  []byte
	maxAge  time.Duration
	baseURL string
}

// NewVerificationService creates a new VerificationService. baseURL is the
// externally reachable origin used to build verification links.
func NewVerificationService(users domain.UserRepository, mailer domain.Mailer, secret string, maxAge time.Duration, baseURL string) *VerificationService {
	if maxAge <= 0 {
		maxAge = DefaultTokenMaxAge
	}
	return &VerificationService{
		users:   users,
		mailer:  mailer,
		secret:  []byte(secret),
		maxAge:  maxAge,
		baseURL: baseURL,
	}
}

// IssueToken produces a signed token binding the email address to the
// email-verification purpose with an issuance timestamp.
func (s *VerificationService) IssueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     NormalizeEmail(email),
		"purpose": verificationPurpose,
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}
	return signed, nil
}

// Redeem verifies a token string and returns the email it was issued for.
// Signature or structural failures return domain.ErrTokenInvalid; a valid
// token older than maxAge returns domain.ErrTokenExpired. The two checks
// are deliberately separate even though callers present them to the user
// as one message.
func (s *VerificationService) Redeem(tokenString string, maxAge time.Duration) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	if purpose, _ := claims["purpose"].(string); purpose != verificationPurpose {
		return "", domain.ErrTokenInvalid
	}

	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return "", domain.ErrTokenInvalid
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return "", domain.ErrTokenInvalid
	}

	if time.Since(issuedAt.Time) > maxAge {
		return "", domain.ErrTokenExpired
	}

	return email, nil
}

// SendVerification issues a fresh token and attempts to deliver the
// verification link. It reports whether delivery succeeded; a failed send
// never fails the surrounding operation.
func (s *VerificationService) SendVerification(ctx context.Context, user *domain.User) bool {
	token, err := s.IssueToken(user.Email)
	if err != nil {
		slog.Error("issue verification token", "error", err)
		return false
	}

	link := s.baseURL + "/verify-email/" + token
	return s.mailer.Send(ctx, domain.MailVerification, user.Email, user.FullName(), link)
}

// VerifyEmail redeems a verification link token and marks the resolved user
// verified. The second return reports whether the user was already verified,
// in which case nothing is mutated and no welcome mail is sent.
func (s *VerificationService) VerifyEmail(ctx context.Context, tokenString string) (*domain.User, bool, error) {
	email, err := s.Redeem(tokenString, s.maxAge)
	if err != nil {
		// Expired and invalid tokens are logged distinctly but reported
		// identically upstream.
		slog.Info("verification link rejected", "reason", err)
		return nil, false, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrTokenInvalid
		}
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	if user.EmailVerified {
		return user, true, nil
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, false, fmt.Errorf("mark verified: %w", err)
	}
	user.EmailVerified = true

	if !s.mailer.Send(ctx, domain.MailWelcome, user.Email, user.FullName(), "") {
		slog.Warn("welcome mail delivery failed", "email", user.Email)
	}

	return user, false, nil
}

// Resend issues and delivers a fresh verification link for an unverified
// user. The first return reports delivery success, the second whether the
// user was already verified (in which case nothing is sent).
func (s *VerificationService) Resend(ctx context.Context, user *domain.User) (delivered, alreadyVerified bool) {
	if user.EmailVerified {
		return false, true
	}
	return s.SendVerification(ctx, user), false
}
