package audio

import "fmt"

// Reason classifies a failed download.
type Reason int

const (
	// DownloadFailed covers network, extractor and process failures.
	DownloadFailed Reason = iota
	// NoStreamAvailable means the video exposes no audio stream.
	NoStreamAvailable
)

func (r Reason) String() string {
	switch r {
	case NoStreamAvailable:
		return "no stream available"
	default:
		return "download failed"
	}
}

type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason.String()
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
