// Package notify delivers interview invitations to candidates. Failures
// are reported to the caller, which logs and moves on; a lost email never
// fails a batch.
package notify

import "context"

// Sender delivers one plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
