package summarizer

import (
	"context"
	"errors"
	"strings"
)

var errEmptyCompletion = errors.New("empty completion")

// Summarize sends the transcript once and returns the completion verbatim,
// trimmed. Empty instructions fall back to Instructions.
func (s *implSummarizer) Summarize(ctx context.Context, text, instructions string) (string, error) {
	if instructions == "" {
		instructions = Instructions
	}

	s.logger.Info(ctx, "Summarizing %d chars", len(text))

	summary, err := s.completer.Complete(ctx, instructions, text)
	if err != nil {
		s.logger.Error(ctx, "Completion failed: %v", err)
		return "", &Error{Err: err}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		s.logger.Error(ctx, "Completion returned no text")
		return "", &Error{Err: errEmptyCompletion}
	}

	s.logger.Info(ctx, "Summary ready (%d chars)", len(summary))
	return summary, nil
}
