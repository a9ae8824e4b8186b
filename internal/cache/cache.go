package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the platform-appropriate default cache directory for reposnap.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "reposnap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "reposnap"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "reposnap", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "reposnap", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "reposnap"), nil
	}
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	return dir, nil
}

// Stats describes the on-disk cache.
type Stats struct {
	Dir          string `json:"dir"`
	TreeEntries  int    `json:"treeEntries"`
	ContentFiles int    `json:"contentFiles"`
	TotalBytes   int64  `json:"totalBytes"`
}

// GetStats scans a cache directory and tallies tree and content entries.
func GetStats(dir string) (Stats, error) {
	stats := Stats{Dir: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		var counted bool
		switch filepath.Ext(e.Name()) {
		case ".json":
			stats.TreeEntries++
			counted = true
		case ".cache":
			stats.ContentFiles++
			counted = true
		}
		if !counted {
			continue
		}
		if info, err := e.Info(); err == nil {
			stats.TotalBytes += info.Size()
		}
	}
	return stats, nil
}

// Clear removes all tree and content cache files from a cache directory.
func Clear(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".json", ".cache":
			os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}
