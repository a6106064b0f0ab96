// Package mailx abstracts outbound transactional email behind a small
// Sender interface so services can be tested with a fake.
package mailx

import "context"

// Sender delivers a single plain-text email. Implementations surface
// delivery failures synchronously; there is no queueing or retry here.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, to, subject, body string) error

func (f SenderFunc) Send(ctx context.Context, to, subject, body string) error {
	return f(ctx, to, subject, body)
}
