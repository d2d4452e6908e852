package notify

import "context"

// Notifier delivers a text message to a phone number. Implementations talk
// to an external channel, so callers bound the context.
type Notifier interface {
	Send(ctx context.Context, toPhone, body string) error
}
