package summarizer

import "fmt"

// Error is returned for any failed or empty completion.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("completion error: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
