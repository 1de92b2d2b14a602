package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/beckagarrison/caseintake/constants"
)

// UploadItem is one file submitted in a batch. It is consumed exactly once
// by the orchestrator and not retained after processing.
type UploadItem struct {
	Name       string // base name, includes extension
	Data       []byte
	Size       int64
	SourcePath string
	HashHex    string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Loaded  uint32
	Failed  uint32
}

// LoadPath reads one file into an UploadItem.
func LoadPath(path string) (UploadItem, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return UploadItem{}, fmt.Errorf("abs path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return UploadItem{}, fmt.Errorf("read %s: %w", abs, err)
	}
	sum := sha256.Sum256(data)
	return UploadItem{
		Name:       filepath.Base(abs),
		Data:       data,
		Size:       int64(len(data)),
		SourcePath: abs,
		HashHex:    hex.EncodeToString(sum[:]),
	}, nil
}

// ScanDirectory walks root, skips hidden entries if requested, loads every
// file with a supported extension, and returns the items in walk order plus
// aggregate stats. Per-file read errors are counted, logged, and skipped;
// they never abort the scan.
func ScanDirectory(root string, skipHidden bool, logger *slog.Logger) ([]UploadItem, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var items []UploadItem
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			logger.Warn("walk error", "path", path, "error", walkErr)
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsSupportedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		item, err := LoadPath(path)
		if err != nil {
			logger.Warn("load failed", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		items = append(items, item)
		stats.Loaded++
		return nil
	})
	if err != nil {
		return items, stats, fmt.Errorf("walk: %w", err)
	}
	return items, stats, nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
