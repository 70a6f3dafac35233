package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Pipeline turns a video reference into a summary, preferring captions and
// falling back to speech recognition on the downloaded audio.
type Pipeline interface {
	Run(ctx context.Context, ref video.Reference, sink ProgressSink) (string, error)
}

// ProgressSink receives user-visible status. Errors it returns are logged
// and never abort a run.
type ProgressSink interface {
	Update(ctx context.Context, p Progress) error
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(ctx context.Context, p Progress) error

func (f SinkFunc) Update(ctx context.Context, p Progress) error { return f(ctx, p) }

// Discard drops every update.
var Discard ProgressSink = SinkFunc(func(context.Context, Progress) error { return nil })
