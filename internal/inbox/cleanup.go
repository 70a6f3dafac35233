package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a handled link file out of the inbox. An existing
// file with the same name is kept by adding a timestamp.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	name := filepath.Base(path)
	dest := filepath.Join(p.archivedDir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(p.archivedDir,
			fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), time.Now().Format("20060102-150405"), ext))
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
