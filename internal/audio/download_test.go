package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/video"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// fakeExecutor emulates yt-dlp: it resolves the -o template and
// optionally writes a file there before returning.
type fakeExecutor struct {
	ext     string
	write   bool
	partial bool
	print   bool
	err     error
	args    []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	var template string
	for i, a := range args {
		if a == "-o" {
			template = args[i+1]
		}
	}
	path := strings.Replace(template, "%(ext)s", f.ext, 1)
	if f.write {
		if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
			return "", err
		}
	}
	if f.partial {
		_ = os.WriteFile(path+".part", []byte("par"), 0644)
	}
	if f.err != nil {
		return "", f.err
	}
	if f.print {
		return "[info] something\n" + path + "\n", nil
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range des {
		names = append(names, d.Name())
	}
	return names
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{ext: "webm", write: true, print: true}
	a := New(Options{TempDir: dir, CookiesFile: "cookies.txt"}, exec, logger.NewNop())

	asset, err := a.Download(context.Background(), video.Parse("https://youtu.be/xyz789"))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if asset.Format != "webm" || filepath.Dir(asset.Path) != dir {
		t.Errorf("Download() = %+v", asset)
	}
	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "--cookies cookies.txt") || !strings.HasSuffix(joined, "https://youtu.be/xyz789") {
		t.Errorf("unexpected yt-dlp args: %s", joined)
	}

	if err := asset.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := asset.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
	if got := entries(t, dir); len(got) != 0 {
		t.Errorf("files left after Release: %v", got)
	}
}

func TestDownloadNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	a := New(Options{TempDir: dir}, &fakeExecutor{ext: "m4a", write: true, print: true}, logger.NewNop())
	ref := video.Parse("https://youtu.be/xyz789")

	first, err := a.Download(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Download(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Errorf("two downloads share path %s", first.Path)
	}
}

func TestDownloadErrors(t *testing.T) {
	tests := []struct {
		name   string
		exec   *fakeExecutor
		reason Reason
	}{
		{
			name: "format unavailable",
			exec: &fakeExecutor{ext: "webm", partial: true, err: &executor.Error{
				Name: "yt-dlp", Err: errors.New("exit status 1"),
				Stderr: "ERROR: [youtube] abc: Requested format is not available",
			}},
			reason: NoStreamAvailable,
		},
		{
			name: "network failure",
			exec: &fakeExecutor{ext: "webm", partial: true, err: &executor.Error{
				Name: "yt-dlp", Err: errors.New("exit status 1"),
				Stderr: "ERROR: unable to download webpage: HTTP Error 503",
			}},
			reason: DownloadFailed,
		},
		{
			name:   "nothing printed",
			exec:   &fakeExecutor{ext: "webm"},
			reason: NoStreamAvailable,
		},
		{
			name:   "printed path missing",
			exec:   &fakeExecutor{ext: "webm", print: true},
			reason: DownloadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			a := New(Options{TempDir: dir}, tt.exec, logger.NewNop())

			asset, err := a.Download(context.Background(), video.Parse("https://youtu.be/abc"))
			if asset != nil {
				t.Errorf("Download() asset = %+v, want nil", asset)
			}
			var audioErr *Error
			if !errors.As(err, &audioErr) {
				t.Fatalf("Download() error = %v, want *audio.Error", err)
			}
			if audioErr.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", audioErr.Reason, tt.reason)
			}
			if got := entries(t, dir); len(got) != 0 {
				t.Errorf("partial files left: %v", got)
			}
		})
	}
}
