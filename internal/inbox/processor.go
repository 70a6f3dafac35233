package inbox

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/report"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Process runs the pipeline for each link in the file, writes one report per
// summary and archives the file.
func (p *implProcessor) Process(ctx context.Context, linkFile string) error {
	startTime := time.Now()
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	links, err := readLinks(linkFile)
	if err != nil {
		return fmt.Errorf("read links: %w", err)
	}

	p.logger.Info(ctx, "Processing %s: %d links", linkFile, len(links))

	successCount := 0
	failCount := 0
	for i, ref := range links {
		link := ref.URL
		p.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(links), link)

		summary, err := p.pipeline.Run(ctx, ref, p.progressLogger())
		if err != nil {
			p.logger.Error(ctx, "Failed to summarize %s: %v", link, err)
			failCount++
			continue
		}

		id := ref.ID
		if id == "" {
			id = "video-" + uuid.NewString()[:8]
		}
		if _, err := p.writer.Write(ctx, report.Report{VideoID: id, URL: link, Summary: summary}); err != nil {
			p.logger.Error(ctx, "Failed to write report for %s: %v", link, err)
			failCount++
			continue
		}
		successCount++
	}

	if err := p.moveToArchived(ctx, linkFile); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to archived folder: %v", linkFile, err)
	}

	p.logger.Info(ctx, "Finished %s in %s: %d success, %d failed", linkFile, time.Since(startTime).Round(time.Millisecond), successCount, failCount)

	if len(links) > 0 && successCount == 0 {
		return fmt.Errorf("no summary produced for %s", linkFile)
	}
	return nil
}

func (p *implProcessor) progressLogger() pipeline.ProgressSink {
	return pipeline.SinkFunc(func(ctx context.Context, pr pipeline.Progress) error {
		if !pr.Final {
			p.logger.Info(ctx, "  %s", pr.Text)
		}
		return nil
	})
}

// readLinks returns the YouTube links of a plain list or an InternetShortcut
// (.url) file, one per line, duplicates removed.
func readLinks(path string) ([]video.Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []video.Reference
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "URL=")
		ref, ok := video.Detect(line)
		if !ok || seen[ref.URL] {
			continue
		}
		seen[ref.URL] = true
		links = append(links, ref)
	}
	return links, scanner.Err()
}
