package watcher

import "context"

// Watcher dispatches files appearing in a directory to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one file.
type EventHandler func(ctx context.Context, filePath string) error
