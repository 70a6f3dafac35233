package broadcast

import "context"

// Message is what gets delivered. Template may contain {user}, replaced per
// recipient by the display name. Media is transport specific and may be nil.
type Message struct {
	Template string
	Media    any
}

// Outcome counts delivery results.
type Outcome struct {
	Delivered int
	Failed    int
}

// Transport delivers one message to one recipient.
type Transport interface {
	DisplayName(ctx context.Context, recipient int64) (string, error)
	Send(ctx context.Context, recipient int64, text string, media any) error
}

// Dispatcher delivers one message to many recipients. A failing recipient
// never stops the others.
type Dispatcher interface {
	Broadcast(ctx context.Context, msg Message, recipients []int64) Outcome
}
