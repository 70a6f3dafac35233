package captions

import (
	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

type implFetcher struct {
	source    Source
	languages []string
	logger    logger.Logger
}

// New creates a Fetcher that prefers caption languages in the given order.
func New(source Source, languages []string, log logger.Logger) Fetcher {
	return &implFetcher{
		source:    source,
		languages: append([]string(nil), languages...),
		logger:    log,
	}
}
