package summarizer

import (
	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

type implSummarizer struct {
	completer Completer
	logger    logger.Logger
}

// New creates a Summarizer over the given completion backend.
func New(completer Completer, log logger.Logger) Summarizer {
	return &implSummarizer{
		completer: completer,
		logger:    log,
	}
}
