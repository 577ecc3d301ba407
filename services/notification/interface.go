package notification

import "context"

// Message is a rendered chat reply: text plus an optional reply keyboard.
type Message struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

// Notifier is the outbound sink of the dialogue engine. Both calls are
// fire-and-forget from the caller's perspective; delivery failures are
// logged, never retried by the caller.
type Notifier interface {
	NotifyUser(ctx context.Context, userID string, msg Message) error
	NotifyChannel(ctx context.Context, text string) error
}
