package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

type fakePipeline struct {
	updates []pipeline.Progress
	summary string
	err     error
	ref     video.Reference
}

func (f *fakePipeline) Run(ctx context.Context, ref video.Reference, sink pipeline.ProgressSink) (string, error) {
	f.ref = ref
	for _, u := range f.updates {
		_ = sink.Update(ctx, u)
	}
	return f.summary, f.err
}

func okPipeline() *fakePipeline {
	return &fakePipeline{
		updates: []pipeline.Progress{
			{Stage: pipeline.FetchingCaptions, Text: "Attempting..."},
			{Stage: pipeline.Done, Text: "Summary.", Final: true},
		},
		summary: "Summary.",
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(New(okPipeline(), Options{}, logger.NewNop()).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestCreateSummary(t *testing.T) {
	tests := []struct {
		name       string
		pipeline   *fakePipeline
		body       string
		wantStatus int
		wantError  string
		wantKind   string
		wantStages int
	}{
		{
			name:       "success",
			pipeline:   okPipeline(),
			body:       `{"url":"https://www.youtube.com/watch?v=abc123"}`,
			wantStatus: http.StatusOK,
			wantStages: 2,
		},
		{
			name:       "bad json",
			pipeline:   okPipeline(),
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid JSON body",
		},
		{
			name:       "not a youtube link",
			pipeline:   okPipeline(),
			body:       `{"url":"https://vimeo.com/1"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidLink,
		},
		{
			name: "pipeline failure",
			pipeline: &fakePipeline{
				updates: []pipeline.Progress{{Stage: pipeline.Failed, Text: "Unable to recognize speech.", Final: true}},
				err:     &pipeline.Error{Kind: pipeline.UnintelligibleAudio},
			},
			body:       `{"url":"https://youtu.be/xyz789"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Unable to recognize speech.",
			wantKind:   "unintelligible_audio",
			wantStages: 1,
		},
		{
			name:       "untyped failure",
			pipeline:   &fakePipeline{err: errors.New("boom")},
			body:       `{"url":"https://youtu.be/xyz789"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.pipeline, Options{}, logger.NewNop()).Router()
			req := httptest.NewRequest(http.MethodPost, "/api/summaries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp summaryResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.wantError || resp.Kind != tt.wantKind || len(resp.Stages) != tt.wantStages {
				t.Errorf("response = %+v", resp)
			}
			if tt.wantStatus == http.StatusOK && resp.Summary != "Summary." {
				t.Errorf("Summary = %q", resp.Summary)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := New(okPipeline(), Options{AllowedOrigins: []string{"https://app.example"}}, logger.NewNop()).Router()
	req := httptest.NewRequest(http.MethodOptions, "/api/summaries", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestStream(t *testing.T) {
	p := okPipeline()
	srv := httptest.NewServer(New(p, Options{}, logger.NewNop()).Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(summaryRequest{URL: "https://youtu.be/xyz789?t=5"}); err != nil {
		t.Fatal(err)
	}

	var frames []stageView
	for {
		var f stageView
		if err := conn.ReadJSON(&f); err != nil {
			break
		}
		frames = append(frames, f)
	}

	if len(frames) != 2 {
		t.Fatalf("frames = %+v, want 2", frames)
	}
	if frames[0].Stage != "fetching_captions" || !frames[1].Final || frames[1].Text != "Summary." {
		t.Errorf("frames = %+v", frames)
	}
	if p.ref.ID != "xyz789" {
		t.Errorf("ref = %+v", p.ref)
	}
}

func TestStreamInvalidLink(t *testing.T) {
	srv := httptest.NewServer(New(okPipeline(), Options{}, logger.NewNop()).Router())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(summaryRequest{URL: "hello"}); err != nil {
		t.Fatal(err)
	}
	var f stageView
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatal(err)
	}
	if f.Stage != "failed" || f.Text != msgInvalidLink || !f.Final {
		t.Errorf("frame = %+v", f)
	}
}
