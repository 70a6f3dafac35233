package speech

import "fmt"

type Kind int

const (
	ConversionFailed Kind = iota
	ServiceUnavailable
	UnintelligibleAudio
)

func (k Kind) String() string {
	switch k {
	case ConversionFailed:
		return "conversion failed"
	case ServiceUnavailable:
		return "service unavailable"
	case UnintelligibleAudio:
		return "unintelligible audio"
	default:
		return "unknown"
	}
}

// Error is the failure of a conversion or recognition step.
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
