package speech

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/audio"
)

var (
	errSilence         = errors.New("audio is silent")
	errEmptyTranscript = errors.New("recognizer returned no text")
)

// Recognize measures the ambient level, rejects digitally silent audio and
// hands everything else to the configured Recognizer.
func (t *implTranscriber) Recognize(ctx context.Context, wav *audio.Asset) (string, error) {
	samples, err := readWAV(wav.Path)
	if err != nil {
		t.logger.Warn(ctx, "Skipping ambient calibration for %s: %v", wav.Path, err)
	} else {
		t.logger.Debug(ctx, "Ambient level %.1f RMS", ambientLevel(samples, t.opts.Calibration))
		if silent(samples, t.opts.MinEnergy) {
			t.logger.Info(ctx, "Audio is silent: %s", wav.Path)
			return "", &Error{Kind: UnintelligibleAudio, Err: errSilence}
		}
	}

	t.logger.Info(ctx, "Recognizing speech: %s", wav.Path)

	text, err := t.recognizer.Recognize(ctx, wav.Path)
	if err != nil {
		var speechErr *Error
		if errors.As(err, &speechErr) {
			return "", err
		}
		return "", &Error{Kind: ServiceUnavailable, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &Error{Kind: UnintelligibleAudio, Err: errEmptyTranscript}
	}

	t.logger.Info(ctx, "Speech recognized (%d chars)", len(text))
	return text, nil
}
