package cache

import (
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
)

// ContentStore persists decoded blob text, one file per content SHA. Git's
// content addressing makes entries immutable, so there is no expiry and no
// eviction.
type ContentStore struct {
	dir     string
	enabled bool
}

// NewContentStore creates a ContentStore rooted at dir. If dir is empty, the
// default cache directory is used.
func NewContentStore(enabled bool, dir string) (*ContentStore, error) {
	if !enabled {
		return &ContentStore{enabled: false}, nil
	}
	d, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &ContentStore{dir: d, enabled: true}, nil
}

// Get reads the stored content for a blob SHA. Returns ("", false) on miss.
func (s *ContentStore) Get(sha string) (string, bool) {
	if !s.enabled || sha == "" {
		return "", false
	}
	data, err := os.ReadFile(s.entryPath(sha))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores content under a blob SHA. Best-effort: failures are logged and
// the caller proceeds with its in-memory copy.
func (s *ContentStore) Put(sha, content string) {
	if !s.enabled || sha == "" {
		return
	}
	if err := os.WriteFile(s.entryPath(sha), []byte(content), 0o644); err != nil {
		logger.WithError(err).WithField("sha", sha).Warn("skipping content cache write")
	}
}

// Dir returns the cache directory path.
func (s *ContentStore) Dir() string { return s.dir }

// Enabled returns whether caching is enabled.
func (s *ContentStore) Enabled() bool { return s.enabled }

func (s *ContentStore) entryPath(sha string) string {
	return filepath.Join(s.dir, sha+".cache")
}
