package report

import (
	"context"
	"time"
)

// Report is one finished summary.
type Report struct {
	VideoID   string
	URL       string
	Summary   string
	CreatedAt time.Time
}

// Files lists what a Writer produced.
type Files struct {
	Markdown string
	Docx     string
}

// Writer persists summaries as Markdown and DOCX documents.
type Writer interface {
	Write(ctx context.Context, r Report) (Files, error)
}
