package telegram

import (
	"github.com/nguyentantai21042004/tubesum/internal/broadcast"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/registry"
)

type Options struct {
	// AuthUserID may run /users and /bcast.
	AuthUserID    int64
	MaxConcurrent int
}

type implBot struct {
	api        API
	pipeline   pipeline.Pipeline
	registry   registry.Registry
	dispatcher broadcast.Dispatcher
	opts       Options
	sem        *semaphore
	logger     logger.Logger
}

// New creates a Bot. The dispatcher should deliver through NewTransport(api).
func New(
	api API,
	p pipeline.Pipeline,
	reg registry.Registry,
	dispatcher broadcast.Dispatcher,
	opts Options,
	log logger.Logger,
) Bot {
	return &implBot{
		api:        api,
		pipeline:   p,
		registry:   reg,
		dispatcher: dispatcher,
		opts:       opts,
		sem:        newSemaphore(opts.MaxConcurrent),
		logger:     log,
	}
}
