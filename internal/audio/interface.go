package audio

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Acquirer downloads the best audio stream of a video into a transient file.
// On success the caller owns the returned Asset and must Release it.
type Acquirer interface {
	Download(ctx context.Context, ref video.Reference) (*Asset, error)
}
