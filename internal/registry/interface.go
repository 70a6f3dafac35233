package registry

import "context"

// Registry is the set of chat ids that have started the bot.
type Registry interface {
	Contains(ctx context.Context, id int64) (bool, error)
	// Insert adds id; inserting an existing id is a no-op.
	Insert(ctx context.Context, id int64) error
	All(ctx context.Context) ([]int64, error)
	Close() error
}
