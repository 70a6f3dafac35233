package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Write stores <dir>/<id>.md and <dir>/<id>.docx. A failed DOCX render
// leaves the Markdown file in place and is reported as an error.
func (w *implWriter) Write(ctx context.Context, r Report) (Files, error) {
	if r.VideoID == "" {
		return Files{}, fmt.Errorf("report has no video id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	title := "Summary of " + r.VideoID
	files := Files{
		Markdown: filepath.Join(w.dir, r.VideoID+".md"),
		Docx:     filepath.Join(w.dir, r.VideoID+".docx"),
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n<%s>\n\n%s\n",
		title,
		r.CreatedAt.Format("2006-01-02 15:04"),
		r.URL,
		strings.TrimSpace(r.Summary),
	)
	if err := os.WriteFile(files.Markdown, []byte(md), 0644); err != nil {
		return Files{}, fmt.Errorf("write markdown: %w", err)
	}

	if err := markdownToDocx(title, r.Summary, files.Docx); err != nil {
		return Files{Markdown: files.Markdown}, fmt.Errorf("write docx: %w", err)
	}

	w.logger.Info(ctx, "[DONE] %s -> %s", r.VideoID, files.Markdown)
	return files, nil
}
