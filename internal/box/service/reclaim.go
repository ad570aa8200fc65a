package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

// Reclaim removes generated boxes older than the configured reclaim age.
// Files that do not look like generated boxes are left alone.
func (s *BoxService) Reclaim(ctx context.Context) (*model.BoxReclaimResult, error) {
	result := &model.BoxReclaimResult{}
	if s.reclaimAge <= 0 {
		return result, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read box directory: %w", err)
	}

	cutoff := s.now().Add(-s.reclaimAge)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.IsDir() || !IsBoxName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error accessing %s: %v", entry.Name(), err))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error removing %s: %v", entry.Name(), err))
			continue
		}
		result.DeletedFiles = append(result.DeletedFiles, entry.Name())
	}

	result.DeletedCount = len(result.DeletedFiles)
	if result.DeletedCount > 0 {
		s.log.Info("Reclaimed %d boxes", result.DeletedCount)
	}
	return result, nil
}
