package captions

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/tubesum/internal/video"
)

var errNoPreferredTrack = errors.New("no caption track in a preferred language")

// Fetch returns the caption text of the first preferred language available.
func (f *implFetcher) Fetch(ctx context.Context, ref video.Reference) Result {
	if !ref.Identified() {
		f.logger.Info(ctx, "Captions skipped, no video id in %q", ref.URL)
		return NotFound
	}

	tracks, err := f.source.ListTracks(ctx, ref.ID)
	if err != nil {
		f.logger.Warn(ctx, "List caption tracks for %s: %v", ref.ID, err)
		return NotFound
	}

	track, err := pickTrack(tracks, f.languages)
	if err != nil {
		f.logger.Info(ctx, "Captions for %s: %v (%d tracks)", ref.ID, err, len(tracks))
		return NotFound
	}

	lines, err := f.source.FetchTrack(ctx, track)
	if err != nil {
		f.logger.Warn(ctx, "Fetch %s captions for %s: %v", track.LanguageCode, ref.ID, err)
		return NotFound
	}

	result := Found(strings.Join(lines, " "))
	if !result.Found {
		f.logger.Info(ctx, "Captions for %s are empty", ref.ID)
		return NotFound
	}

	f.logger.Info(ctx, "Captions found for %s (%s, %d chars)", ref.ID, track.LanguageCode, len(result.Text))
	return result
}

// pickTrack walks the preference list in order; for each language a manually
// created track beats a generated one.
func pickTrack(tracks []Track, languages []string) (Track, error) {
	for _, lang := range languages {
		var generated *Track
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if !tracks[i].Generated {
				return tracks[i], nil
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, nil
		}
	}
	return Track{}, errNoPreferredTrack
}
