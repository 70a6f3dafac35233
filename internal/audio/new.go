package audio

import (
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// Options configures the yt-dlp based Acquirer.
type Options struct {
	BinaryPath  string
	Format      string
	CookiesFile string
	TempDir     string
}

type implAcquirer struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Acquirer that shells out to yt-dlp.
func New(opts Options, exec executor.Executor, log logger.Logger) Acquirer {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "yt-dlp"
	}
	if opts.Format == "" {
		opts.Format = "bestaudio"
	}
	return &implAcquirer{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
