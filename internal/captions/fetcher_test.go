package captions

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

type fakeSource struct {
	tracks     []Track
	listErr    error
	lines      map[string][]string
	fetchErr   error
	listCalls  int
	fetchCalls int
	fetched    Track
}

func (s *fakeSource) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	s.listCalls++
	return s.tracks, s.listErr
}

func (s *fakeSource) FetchTrack(ctx context.Context, track Track) ([]string, error) {
	s.fetchCalls++
	s.fetched = track
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.lines[track.BaseURL], nil
}

func TestFetchUnidentifiedMakesNoCall(t *testing.T) {
	src := &fakeSource{}
	f := New(src, []string{"en"}, logger.NewNop())

	for _, raw := range []string{"https://vimeo.com/1", "https://youtube.com/@chan", "not a url"} {
		got := f.Fetch(context.Background(), video.Parse(raw))
		if got != NotFound {
			t.Errorf("Fetch(%q) = %+v, want NotFound", raw, got)
		}
	}
	if src.listCalls != 0 || src.fetchCalls != 0 {
		t.Errorf("source called %d/%d times, want none", src.listCalls, src.fetchCalls)
	}
}

func TestFetch(t *testing.T) {
	ref := video.Parse("https://www.youtube.com/watch?v=abc123")

	tests := []struct {
		name      string
		src       *fakeSource
		languages []string
		want      Result
		wantURL   string
	}{
		{
			name: "english captions",
			src: &fakeSource{
				tracks: []Track{{LanguageCode: "en", BaseURL: "en"}},
				lines:  map[string][]string{"en": {"hello", "world"}},
			},
			languages: []string{"en"},
			want:      Result{Text: "hello world", Found: true},
			wantURL:   "en",
		},
		{
			name: "preference order wins over listing order",
			src: &fakeSource{
				tracks: []Track{{LanguageCode: "de", BaseURL: "de"}, {LanguageCode: "ja", BaseURL: "ja"}},
				lines:  map[string][]string{"de": {"hallo"}, "ja": {"konnichiwa"}},
			},
			languages: []string{"en", "ja", "de"},
			want:      Result{Text: "konnichiwa", Found: true},
			wantURL:   "ja",
		},
		{
			name: "manual beats generated in same language",
			src: &fakeSource{
				tracks: []Track{
					{LanguageCode: "en", Generated: true, BaseURL: "asr"},
					{LanguageCode: "en", BaseURL: "manual"},
				},
				lines: map[string][]string{"asr": {"auto"}, "manual": {"curated"}},
			},
			languages: []string{"en"},
			want:      Result{Text: "curated", Found: true},
			wantURL:   "manual",
		},
		{
			name: "generated preferred language beats manual later language",
			src: &fakeSource{
				tracks: []Track{
					{LanguageCode: "fr", BaseURL: "fr"},
					{LanguageCode: "en", Generated: true, BaseURL: "asr"},
				},
				lines: map[string][]string{"fr": {"bonjour"}, "asr": {"auto"}},
			},
			languages: []string{"en", "fr"},
			want:      Result{Text: "auto", Found: true},
			wantURL:   "asr",
		},
		{
			name: "no preferred language",
			src: &fakeSource{
				tracks: []Track{{LanguageCode: "pt", BaseURL: "pt"}},
			},
			languages: []string{"en"},
			want:      NotFound,
		},
		{
			name:      "listing error",
			src:       &fakeSource{listErr: errors.New("network down")},
			languages: []string{"en"},
			want:      NotFound,
		},
		{
			name: "fetch error",
			src: &fakeSource{
				tracks:   []Track{{LanguageCode: "en", BaseURL: "en"}},
				fetchErr: errors.New("timeout"),
			},
			languages: []string{"en"},
			want:      NotFound,
		},
		{
			name: "empty caption text",
			src: &fakeSource{
				tracks: []Track{{LanguageCode: "en", BaseURL: "en"}},
				lines:  map[string][]string{"en": {"", "  "}},
			},
			languages: []string{"en"},
			want:      NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.src, tt.languages, logger.NewNop())
			got := f.Fetch(context.Background(), ref)
			if got != tt.want {
				t.Errorf("Fetch() = %+v, want %+v", got, tt.want)
			}
			if tt.wantURL != "" && tt.src.fetched.BaseURL != tt.wantURL {
				t.Errorf("fetched track %q, want %q", tt.src.fetched.BaseURL, tt.wantURL)
			}
		})
	}
}

func TestFound(t *testing.T) {
	if Found("   ") != NotFound {
		t.Error("Found(blank) should be NotFound")
	}
	if got := Found(" text "); !got.Found || got.Text != "text" {
		t.Errorf("Found() = %+v", got)
	}
}
