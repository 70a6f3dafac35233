package broadcast

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const userPlaceholder = "{user}"

// Broadcast attempts every recipient once and returns the counts after the
// last attempt finished.
func (d *implDispatcher) Broadcast(ctx context.Context, msg Message, recipients []int64) Outcome {
	var delivered, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(d.parallelism)

	for _, id := range recipients {
		g.Go(func() error {
			if err := d.deliver(ctx, msg, id); err != nil {
				failed.Add(1)
				d.logger.Warn(ctx, "Broadcast to %d failed: %v", id, err)
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	out := Outcome{Delivered: int(delivered.Load()), Failed: int(failed.Load())}
	d.logger.Info(ctx, "Broadcast completed: %d delivered, %d failed", out.Delivered, out.Failed)
	return out
}

func (d *implDispatcher) deliver(ctx context.Context, msg Message, id int64) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	// resolved for every recipient; an unreachable chat fails here
	name, err := d.transport.DisplayName(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve display name: %w", err)
	}
	text := strings.ReplaceAll(msg.Template, userPlaceholder, name)

	if err := d.transport.Send(ctx, id, text, msg.Media); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
