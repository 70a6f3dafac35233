package inbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/report"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

type fakePipeline struct {
	mu   sync.Mutex
	fail map[string]bool
	runs []string
}

func (f *fakePipeline) Run(ctx context.Context, ref video.Reference, sink pipeline.ProgressSink) (string, error) {
	f.mu.Lock()
	f.runs = append(f.runs, ref.ID)
	f.mu.Unlock()
	_ = sink.Update(ctx, pipeline.Progress{Stage: pipeline.FetchingCaptions, Text: "Attempting..."})
	if f.fail[ref.ID] {
		return "", &pipeline.Error{Kind: pipeline.UnintelligibleAudio}
	}
	return "summary of " + ref.ID, nil
}

type fakeWriter struct {
	reports []report.Report
}

func (f *fakeWriter) Write(ctx context.Context, r report.Report) (report.Files, error) {
	f.reports = append(f.reports, r)
	return report.Files{}, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	inboxDir := filepath.Join(dir, "inbox")
	archived := filepath.Join(dir, "archived")
	if err := os.MkdirAll(inboxDir, 0755); err != nil {
		t.Fatal(err)
	}

	linkFile := filepath.Join(inboxDir, "list.txt")
	writeFile(t, linkFile, "https://www.youtube.com/watch?v=abc123\n\nnot a link\nhttps://youtu.be/xyz789?t=5\nhttps://youtu.be/xyz789?t=5\nhttps://youtu.be/bad1\n")

	p := &fakePipeline{fail: map[string]bool{"bad1": true}}
	w := &fakeWriter{}
	proc := New(p, w, archived, logger.NewNop())

	if err := proc.Process(context.Background(), linkFile); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(p.runs) != 3 {
		t.Errorf("pipeline runs = %v, want 3 unique links", p.runs)
	}
	if len(w.reports) != 2 || w.reports[0].VideoID != "abc123" || w.reports[1].Summary != "summary of xyz789" {
		t.Errorf("reports = %+v", w.reports)
	}
	if _, err := os.Stat(linkFile); !os.IsNotExist(err) {
		t.Error("link file still in inbox")
	}
	if _, err := os.Stat(filepath.Join(archived, "list.txt")); err != nil {
		t.Errorf("link file not archived: %v", err)
	}
}

func TestProcessAllFailed(t *testing.T) {
	dir := t.TempDir()
	linkFile := filepath.Join(dir, "one.url")
	writeFile(t, linkFile, "[InternetShortcut]\nURL=https://youtu.be/bad1\n")

	p := &fakePipeline{fail: map[string]bool{"bad1": true}}
	proc := New(p, &fakeWriter{}, filepath.Join(dir, "archived"), logger.NewNop())

	err := proc.Process(context.Background(), linkFile)
	if err == nil {
		t.Fatal("Process() should fail when no summary was produced")
	}
	if len(p.runs) != 1 || p.runs[0] != "bad1" {
		t.Errorf("runs = %v", p.runs)
	}
}

func TestProcessMissingFile(t *testing.T) {
	proc := New(&fakePipeline{}, &fakeWriter{}, t.TempDir(), logger.NewNop())
	if err := proc.Process(context.Background(), "/nonexistent/list.txt"); err == nil {
		t.Error("Process() should fail for a missing file")
	}
}

func TestMoveToArchivedKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	archived := filepath.Join(dir, "archived")
	proc := New(&fakePipeline{}, &fakeWriter{}, archived, logger.NewNop()).(*implProcessor)

	for i := 0; i < 2; i++ {
		path := filepath.Join(dir, "list.txt")
		writeFile(t, path, "x")
		if err := proc.moveToArchived(context.Background(), path); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(archived)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("archived entries = %d, want 2", len(entries))
	}
}

func TestReadLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.url")
	writeFile(t, path, "[InternetShortcut]\nURL=https://www.youtube.com/watch?v=abc123\n\nsee also youtu.be/xyz789\nhttps://www.youtube.com/watch?v=abc123\nhttps://example.com/page\n")

	links, err := readLinks(path)
	if err != nil {
		t.Fatalf("readLinks() error = %v", err)
	}

	want := []video.Reference{
		{URL: "https://www.youtube.com/watch?v=abc123", ID: "abc123"},
		{URL: "youtu.be/xyz789", ID: "xyz789"},
	}
	if len(links) != len(want) {
		t.Fatalf("readLinks() = %+v, want %+v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %+v, want %+v", i, links[i], want[i])
		}
	}
}
