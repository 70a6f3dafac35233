package inbox

import "context"

// Processor summarizes every video linked from a dropped link file.
type Processor interface {
	Process(ctx context.Context, linkFile string) error
}
