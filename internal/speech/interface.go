package speech

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/audio"
)

// Transcriber turns a downloaded audio asset into text.
type Transcriber interface {
	// Convert writes a 16 kHz mono PCM WAV next to the input. The caller owns
	// both assets.
	Convert(ctx context.Context, in *audio.Asset) (*audio.Asset, error)
	// Recognize transcribes a converted WAV asset.
	Recognize(ctx context.Context, wav *audio.Asset) (string, error)
}

// Recognizer is a speech-to-text backend.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string) (string, error)
}
