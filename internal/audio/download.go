package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubesum/internal/video"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

// yt-dlp diagnostics that mean the video has nothing to download
var noStreamMarkers = []string{
	"Requested format is not available",
	"No video formats found",
	"no audio",
}

// Download fetches the audio stream into <temp>/<uuid>.<ext>.
func (a *implAcquirer) Download(ctx context.Context, ref video.Reference) (*Asset, error) {
	if err := os.MkdirAll(a.opts.TempDir, 0755); err != nil {
		return nil, &Error{Reason: DownloadFailed, Err: fmt.Errorf("create temp dir: %w", err)}
	}

	token := uuid.NewString()
	template := filepath.Join(a.opts.TempDir, token+".%(ext)s")

	args := []string{
		"--no-playlist",
		"--no-progress",
		"--no-warnings",
		"-f", a.opts.Format,
		"-o", template,
		"--print", "after_move:filepath",
	}
	if a.opts.CookiesFile != "" {
		args = append(args, "--cookies", a.opts.CookiesFile)
	}
	args = append(args, ref.URL)

	a.logger.Info(ctx, "Downloading audio: %s", ref.URL)

	out, err := a.executor.Execute(ctx, a.opts.BinaryPath, args...)
	if err != nil {
		a.removePartials(ctx, token)
		return nil, classify(err)
	}

	path := lastLine(out)
	if path == "" {
		a.removePartials(ctx, token)
		return nil, &Error{Reason: NoStreamAvailable, Err: errors.New("yt-dlp produced no file")}
	}
	if _, err := os.Stat(path); err != nil {
		a.removePartials(ctx, token)
		return nil, &Error{Reason: DownloadFailed, Err: fmt.Errorf("downloaded file: %w", err)}
	}

	a.logger.Info(ctx, "Audio downloaded: %s", path)
	return NewAsset(path), nil
}

func classify(err error) error {
	var execErr *executor.Error
	if errors.As(err, &execErr) {
		for _, marker := range noStreamMarkers {
			if strings.Contains(execErr.Stderr, marker) {
				return &Error{Reason: NoStreamAvailable, Err: err}
			}
		}
	}
	return &Error{Reason: DownloadFailed, Err: err}
}

// removePartials deletes every file yt-dlp may have left for this token.
func (a *implAcquirer) removePartials(ctx context.Context, token string) {
	matches, err := filepath.Glob(filepath.Join(a.opts.TempDir, token+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			a.logger.Warn(ctx, "Failed to cleanup partial download %s: %v", m, err)
		}
	}
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
