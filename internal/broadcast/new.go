package broadcast

import (
	"math"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"golang.org/x/time/rate"
)

type Options struct {
	// Parallelism bounds in-flight deliveries; 1 is sequential.
	Parallelism int
	// RatePerSecond caps the send rate; zero or less is unlimited.
	RatePerSecond float64
}

type implDispatcher struct {
	transport   Transport
	parallelism int
	limiter     *rate.Limiter
	logger      logger.Logger
}

func New(transport Transport, opts Options, log logger.Logger) Dispatcher {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerSecond > 0 {
		burst := int(math.Max(1, math.Ceil(opts.RatePerSecond)))
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return &implDispatcher{
		transport:   transport,
		parallelism: opts.Parallelism,
		limiter:     limiter,
		logger:      log,
	}
}
