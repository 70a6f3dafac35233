package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/audio"
	"github.com/nguyentantai21042004/tubesum/internal/captions"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/speech"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
)

// Timeouts bounds each stage. Zero means no stage deadline.
type Timeouts struct {
	Captions   time.Duration
	Download   time.Duration
	Convert    time.Duration
	Recognize  time.Duration
	Summarize  time.Duration
	SendUpdate time.Duration
}

type Options struct {
	// Instructions is the system guidance for the summarizer.
	Instructions string
	Timeouts     Timeouts
}

type implPipeline struct {
	captions    captions.Fetcher
	acquirer    audio.Acquirer
	transcriber speech.Transcriber
	summarizer  summarizer.Summarizer
	opts        Options
	logger      logger.Logger
}

// New creates a Pipeline from its stages.
func New(
	fetcher captions.Fetcher,
	acquirer audio.Acquirer,
	transcriber speech.Transcriber,
	sum summarizer.Summarizer,
	opts Options,
	log logger.Logger,
) Pipeline {
	if opts.Instructions == "" {
		opts.Instructions = summarizer.Instructions
	}
	return &implPipeline{
		captions:    fetcher,
		acquirer:    acquirer,
		transcriber: transcriber,
		summarizer:  sum,
		opts:        opts,
		logger:      log,
	}
}
