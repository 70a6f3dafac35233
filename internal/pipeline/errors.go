package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/audio"
	"github.com/nguyentantai21042004/tubesum/internal/speech"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// Kind is the failure category of a run.
type Kind int

const (
	NoStreamAvailable Kind = iota
	DownloadFailed
	ConversionFailed
	ServiceUnavailable
	UnintelligibleAudio
	CompletionError
)

func (k Kind) String() string {
	switch k {
	case NoStreamAvailable:
		return "no_stream_available"
	case DownloadFailed:
		return "download_failed"
	case ConversionFailed:
		return "conversion_failed"
	case ServiceUnavailable:
		return "service_unavailable"
	case UnintelligibleAudio:
		return "unintelligible_audio"
	case CompletionError:
		return "completion_error"
	default:
		return "unknown"
	}
}

// Error is the terminal failure of a run.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the text shown to the user.
func (e *Error) Message() string {
	switch e.Kind {
	case NoStreamAvailable:
		return "No audio stream available for this video."
	case DownloadFailed:
		return "Error: " + cause(e.Err)
	case ConversionFailed:
		return "Error during transcription: " + cause(e.Err)
	case ServiceUnavailable:
		return "API unavailable."
	case UnintelligibleAudio:
		return "Unable to recognize speech."
	default:
		return "Error getting AI response."
	}
}

// cause prefers the last diagnostic line an external tool printed.
func cause(err error) string {
	if err == nil {
		return "unknown error"
	}
	var execErr *executor.Error
	if errors.As(err, &execErr) && execErr.Stderr != "" {
		lines := strings.Split(strings.TrimSpace(execErr.Stderr), "\n")
		return strings.TrimSpace(lines[len(lines)-1])
	}
	var audioErr *audio.Error
	if errors.As(err, &audioErr) && audioErr.Err != nil {
		return audioErr.Err.Error()
	}
	var speechErr *speech.Error
	if errors.As(err, &speechErr) && speechErr.Err != nil {
		return speechErr.Err.Error()
	}
	return err.Error()
}

func downloadError(err error) *Error {
	var audioErr *audio.Error
	if errors.As(err, &audioErr) && audioErr.Reason == audio.NoStreamAvailable {
		return &Error{Kind: NoStreamAvailable, Err: err}
	}
	return &Error{Kind: DownloadFailed, Err: err}
}

// speechError maps a transcriber failure, defaulting to fallback.
func speechError(err error, fallback Kind) *Error {
	var speechErr *speech.Error
	if errors.As(err, &speechErr) {
		switch speechErr.Kind {
		case speech.ConversionFailed:
			return &Error{Kind: ConversionFailed, Err: err}
		case speech.ServiceUnavailable:
			return &Error{Kind: ServiceUnavailable, Err: err}
		case speech.UnintelligibleAudio:
			return &Error{Kind: UnintelligibleAudio, Err: err}
		}
	}
	return &Error{Kind: fallback, Err: err}
}

func completionError(err error) *Error {
	var sumErr *summarizer.Error
	if errors.As(err, &sumErr) {
		return &Error{Kind: CompletionError, Err: sumErr}
	}
	return &Error{Kind: CompletionError, Err: err}
}
