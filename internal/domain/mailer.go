package domain

import "context"

// MailKind identifies which outbound message template to send.
type MailKind string

const (
	MailVerification  MailKind = "verification"
	MailWelcome       MailKind = "welcome"
	MailPasswordReset MailKind = "password-reset"
)

// Mailer delivers transactional email. Delivery is best-effort throughout
// the application: a false return downgrades the user-facing message but
// never blocks a state transition.
type Mailer interface {
	// Send delivers a message of the given kind to the address. The link is
	// the action URL embedded in the message (verification or reset link);
	// it is empty for welcome mail.
	Send(ctx context.Context, kind MailKind, to, name, link string) bool
}
