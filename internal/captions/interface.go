package captions

import (
	"context"

	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Fetcher looks up an existing transcript for a video.
// Every failure is reported as NotFound; causes are only logged.
type Fetcher interface {
	Fetch(ctx context.Context, ref video.Reference) Result
}

// Source is the caption backend a Fetcher queries.
type Source interface {
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	FetchTrack(ctx context.Context, track Track) ([]string, error)
}

// Track is one caption track offered for a video.
type Track struct {
	LanguageCode string
	Generated    bool // auto-generated (ASR) track
	BaseURL      string
}
