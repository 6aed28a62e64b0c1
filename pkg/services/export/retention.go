package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRetentionCount is how many exports survive a cleanup pass when the
// configuration does not say otherwise.
const DefaultRetentionCount = 5

const exportFilePattern = "order_export_*"

// Cleanup deletes export files beyond the newest keep, ordered by
// modification time. It returns the deleted filenames. Individual delete
// failures are logged and skipped; repeated invocation on an already trimmed
// directory deletes nothing.
func Cleanup(ctx context.Context, dir string, keep int) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	if keep <= 0 {
		keep = DefaultRetentionCount
	}

	files, err := ListExports(dir)
	if err != nil {
		return nil, err
	}
	if len(files) <= keep {
		return nil, nil
	}

	var deleted []string
	for _, f := range files[keep:] {
		if err := os.Remove(f.Path); err != nil {
			logger.Warn().Err(err).Str("file", f.Path).Msg("failed to delete old export file")
			continue
		}
		name := filepath.Base(f.Path)
		deleted = append(deleted, name)
		logger.Info().Str("file", name).Msg("deleted old export file")
	}
	return deleted, nil
}

// ExportFile is one persisted export artifact on disk.
type ExportFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ListExports returns persisted export files, newest first by mtime.
func ListExports(dir string) ([]ExportFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, exportFilePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list export dir %s: %w", dir, err)
	}

	var files []ExportFile
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, ExportFile{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ModTime.After(files[j].ModTime) })
	return files, nil
}
