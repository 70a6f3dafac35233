package inbox

import (
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/report"
)

type implProcessor struct {
	pipeline    pipeline.Pipeline
	writer      report.Writer
	archivedDir string
	logger      logger.Logger
}

// New creates a Processor that writes reports with writer and moves handled
// link files into archivedDir.
func New(p pipeline.Pipeline, writer report.Writer, archivedDir string, log logger.Logger) Processor {
	return &implProcessor{
		pipeline:    p,
		writer:      writer,
		archivedDir: archivedDir,
		logger:      log,
	}
}
