package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

const (
	watchURL            = "https://www.youtube.com/watch?v="
	playerResponseMark  = "ytInitialPlayerResponse = "
	maxWatchPageBytes   = 6 * 1024 * 1024
	maxTimedTextBytes   = 2 * 1024 * 1024
	userAgent           = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	generatedTrackKind  = "asr"
	defaultAcceptLocale = "en-US,en;q=0.9"
)

// YouTubeSource lists caption tracks by scraping the watch page player
// response and downloads them as timedtext XML.
type YouTubeSource struct {
	client  *http.Client
	baseURL string
}

// NewYouTubeSource creates a Source backed by youtube.com.
func NewYouTubeSource(client *http.Client) *YouTubeSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTubeSource{client: client, baseURL: watchURL}
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []struct {
				BaseURL      string `json:"baseUrl"`
				LanguageCode string `json:"languageCode"`
				Kind         string `json:"kind"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// ListTracks returns the caption tracks advertised on the watch page.
func (s *YouTubeSource) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	body, err := s.get(ctx, s.baseURL+videoID, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMark))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSON(body[idx+len(playerResponseMark):])
	if raw == nil {
		return nil, errors.New("malformed ytInitialPlayerResponse")
	}

	var resp playerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", resp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("video has no captions")
	}

	var tracks []Track
	for _, t := range resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		tracks = append(tracks, Track{
			LanguageCode: t.LanguageCode,
			Generated:    t.Kind == generatedTrackKind,
			BaseURL:      t.BaseURL,
		})
	}
	return tracks, nil
}

// FetchTrack downloads a timedtext track and returns its non-empty lines.
func (s *YouTubeSource) FetchTrack(ctx context.Context, track Track) ([]string, error) {
	if track.BaseURL == "" {
		return nil, errors.New("caption track has no URL")
	}
	body, err := s.get(ctx, track.BaseURL, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	lines := make([]string, 0, len(tt.Lines))
	for _, l := range tt.Lines {
		// entities arrive double-escaped (&amp;#39;)
		text := strings.TrimSpace(html.UnescapeString(l.Text))
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines, nil
}

func (s *YouTubeSource) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", defaultAcceptLocale)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// extractJSON returns the balanced JSON object at the start of data, or nil.
func extractJSON(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}
	return nil
}
