package speech

import (
	"time"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// Options configures conversion and the silence check.
type Options struct {
	FFmpegPath  string
	SampleRate  int
	Calibration time.Duration
	// MinEnergy is the whole-clip RMS below which audio counts as silent.
	MinEnergy float64
}

type implTranscriber struct {
	opts       Options
	recognizer Recognizer
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Transcriber that converts with ffmpeg and recognizes with r.
func New(opts Options, r Recognizer, exec executor.Executor, log logger.Logger) Transcriber {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}
	return &implTranscriber{
		opts:       opts,
		recognizer: r,
		executor:   exec,
		logger:     log,
	}
}
