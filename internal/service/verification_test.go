package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/budgetbeyond/budget-beyond/internal/domain"
	"github.com/budgetbeyond/budget-beyond/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	Kind domain.MailKind
	To   string
	Name string
	Link string
}

// fakeMailer records every send so tests can assert on delivery.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, kind domain.MailKind, to, name, link string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false
	}
	m.sent = append(m.sent, sentMail{Kind: kind, To: to, Name: name, Link: link})
	return true
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type nopMailer struct{}

func (nopMailer) Send(context.Context, domain.MailKind, string, string, string) bool { return true }

func newVerificationFixture(t *testing.T) (*service.VerificationService, *service.AuthService, *fakeMailer) {
	t.Helper()
	db := newTestDB(t)
	mailer := &fakeMailer{}
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	verification := service.NewVerificationService(db.Users(), mailer, testJWTSecret, 0, "http://localhost:8080")
	return verification, auth, mailer
}

func TestVerificationService_IssueAndRedeem(t *testing.T) {
	verification, _, _ := newVerificationFixture(t)

	token, err := verification.IssueToken("Alice@Example.com")
	require.NoError(t, err)

	email, err := verification.Redeem(token, service.DefaultTokenMaxAge)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestVerificationService_Redeem_Expired(t *testing.T) {
	verification, _, _ := newVerificationFixture(t)

	token, err := verification.IssueToken("alice@example.com")
	require.NoError(t, err)

	// A negative max age makes any token already past its window.
	_, err = verification.Redeem(token, -time.Nanosecond)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerificationService_Redeem_Tampered(t *testing.T) {
	verification, _, _ := newVerificationFixture(t)

	token, err := verification.IssueToken("alice@example.com")
	require.NoError(t, err)

	_, err = verification.Redeem(token+"x", service.DefaultTokenMaxAge)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = verification.Redeem("not-a-token", service.DefaultTokenMaxAge)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerificationService_Redeem_RejectsSessionToken(t *testing.T) {
	verification, auth, _ := newVerificationFixture(t)

	user := &domain.User{ID: 1, FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"}
	token, err := auth.StartSession(user)
	require.NoError(t, err)

	_, err = verification.Redeem(token, service.DefaultTokenMaxAge)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerificationService_SendVerification(t *testing.T) {
	verification, auth, mailer := newVerificationFixture(t)
	user := registerTestUser(t, auth, "alice@example.com")

	delivered := verification.SendVerification(context.Background(), user)
	require.True(t, delivered)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.MailVerification, sent[0].Kind)
	assert.Equal(t, "alice@example.com", sent[0].To)
	assert.True(t, strings.HasPrefix(sent[0].Link, "http://localhost:8080/verify-email/"))

	// The link embeds a redeemable token.
	token := strings.TrimPrefix(sent[0].Link, "http://localhost:8080/verify-email/")
	email, err := verification.Redeem(token, service.DefaultTokenMaxAge)
	require.NoError(t, err)
	assert.Equal(t, user.Email, email)
}

func TestVerificationService_SendVerification_DeliveryFailure(t *testing.T) {
	verification, auth, mailer := newVerificationFixture(t)
	user := registerTestUser(t, auth, "alice@example.com")
	mailer.fail = true

	delivered := verification.SendVerification(context.Background(), user)
	assert.False(t, delivered)
}

func TestVerificationService_VerifyEmail(t *testing.T) {
	verification, auth, mailer := newVerificationFixture(t)
	user := registerTestUser(t, auth, "alice@example.com")

	token, err := verification.IssueToken(user.Email)
	require.NoError(t, err)

	verified, already, err := verification.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, verified.EmailVerified)

	// The stored user flipped too.
	stored, err := auth.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.MailWelcome, sent[0].Kind)
}

func TestVerificationService_VerifyEmail_AlreadyVerified(t *testing.T) {
	verification, auth, mailer := newVerificationFixture(t)
	user := registerTestUser(t, auth, "alice@example.com")

	token, err := verification.IssueToken(user.Email)
	require.NoError(t, err)

	_, _, err = verification.VerifyEmail(context.Background(), token)
	require.NoError(t, err)

	// Redeeming a second, still-valid link succeeds but changes nothing
	// and sends no second welcome mail.
	second, err := verification.IssueToken(user.Email)
	require.NoError(t, err)

	_, already, err := verification.VerifyEmail(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Len(t, mailer.Sent(), 1)
}

func TestVerificationService_VerifyEmail_UnknownEmail(t *testing.T) {
	verification, _, _ := newVerificationFixture(t)

	token, err := verification.IssueToken("ghost@example.com")
	require.NoError(t, err)

	_, _, err = verification.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerificationService_Resend(t *testing.T) {
	verification, auth, mailer := newVerificationFixture(t)
	user := registerTestUser(t, auth, "alice@example.com")

	delivered, already := verification.Resend(context.Background(), user)
	assert.True(t, delivered)
	assert.False(t, already)
	assert.Len(t, mailer.Sent(), 1)

	user.EmailVerified = true
	delivered, already = verification.Resend(context.Background(), user)
	assert.False(t, delivered)
	assert.True(t, already)
	assert.Len(t, mailer.Sent(), 1)
}
