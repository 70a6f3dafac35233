package speech

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/audio"
)

// Convert re-encodes the asset to 16-bit mono PCM WAV at the configured rate.
func (t *implTranscriber) Convert(ctx context.Context, in *audio.Asset) (*audio.Asset, error) {
	out := strings.TrimSuffix(in.Path, filepath.Ext(in.Path)) + "_16k.wav"

	t.logger.Info(ctx, "Converting audio: %s", in.Path)

	// -vn drops any video stream, -y overwrites a stale output
	args := []string{
		"-i", in.Path,
		"-vn",
		"-ar", strconv.Itoa(t.opts.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		out,
	}

	if _, err := t.executor.Execute(ctx, t.opts.FFmpegPath, args...); err != nil {
		if rmErr := os.Remove(out); rmErr != nil && !os.IsNotExist(rmErr) {
			t.logger.Warn(ctx, "Failed to cleanup partial conversion %s: %v", out, rmErr)
		}
		return nil, &Error{Kind: ConversionFailed, Err: err}
	}

	t.logger.Info(ctx, "Audio converted: %s", out)
	return audio.NewAsset(out), nil
}
