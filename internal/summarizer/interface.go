package summarizer

import "context"

// Summarizer condenses a transcript into a summary with one completion request.
type Summarizer interface {
	Summarize(ctx context.Context, text, instructions string) (string, error)
}

// Completer is a text-completion backend.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
