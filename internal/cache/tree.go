package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dshills/reposnap/internal/github"
)

// TreeEntry is the cached tree listing for one repository together with the
// branch-head commit it was fetched at.
type TreeEntry struct {
	Repo      string            `json:"repo"`
	CommitSHA string            `json:"sha"`
	Tree      []github.TreeItem `json:"tree"`
	Truncated bool              `json:"truncated,omitempty"`
	CachedAt  time.Time         `json:"cached_at"`
}

// treeEntryFile mirrors TreeEntry on disk and tolerates the older
// "commit_sha" key name.
type treeEntryFile struct {
	Repo          string            `json:"repo"`
	SHA           string            `json:"sha"`
	LegacySHA     string            `json:"commit_sha,omitempty"`
	Tree          []github.TreeItem `json:"tree"`
	Truncated     bool              `json:"truncated,omitempty"`
	CachedAtField time.Time         `json:"cached_at"`
}

// TreeCache persists one TreeEntry per repository as a JSON file.
type TreeCache struct {
	dir     string
	enabled bool
}

// NewTreeCache creates a TreeCache rooted at dir. If dir is empty, the
// default cache directory is used.
func NewTreeCache(enabled bool, dir string) (*TreeCache, error) {
	if !enabled {
		return &TreeCache{enabled: false}, nil
	}
	d, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &TreeCache{dir: d, enabled: true}, nil
}

// Load reads the persisted tree for owner/repo. Returns (nil, false) on a
// missing, corrupt, or malformed cache file.
func (c *TreeCache) Load(owner, repo string) (*TreeEntry, bool) {
	if !c.enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.entryPath(owner, repo))
	if err != nil {
		return nil, false
	}
	var file treeEntryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, false
	}
	sha := file.SHA
	if sha == "" {
		sha = file.LegacySHA
	}
	if sha == "" || file.Tree == nil {
		return nil, false
	}
	return &TreeEntry{
		Repo:      file.Repo,
		CommitSHA: sha,
		Tree:      file.Tree,
		Truncated: file.Truncated,
		CachedAt:  file.CachedAtField,
	}, true
}

// Fresh reports whether a cached entry still matches the live branch head.
// Freshness is SHA equality only; CachedAt is informational.
func (c *TreeCache) Fresh(entry *TreeEntry, headSHA string) bool {
	return entry != nil && headSHA != "" && entry.CommitSHA == headSHA
}

// Store persists an entry, overwriting any previous one for the repository.
// Write failures are non-fatal: the in-memory entry still serves the run.
func (c *TreeCache) Store(owner, repo string, entry *TreeEntry) {
	if !c.enabled {
		return
	}
	file := treeEntryFile{
		Repo:          entry.Repo,
		SHA:           entry.CommitSHA,
		Tree:          entry.Tree,
		Truncated:     entry.Truncated,
		CachedAtField: entry.CachedAt,
	}
	data, err := json.Marshal(file)
	if err != nil {
		logger.WithError(err).Warn("skipping tree cache write")
		return
	}
	if err := os.WriteFile(c.entryPath(owner, repo), data, 0o644); err != nil {
		logger.WithError(err).Warn("skipping tree cache write")
	}
}

// Dir returns the cache directory path.
func (c *TreeCache) Dir() string { return c.dir }

// Enabled returns whether caching is enabled.
func (c *TreeCache) Enabled() bool { return c.enabled }

func (c *TreeCache) entryPath(owner, repo string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s--%s.json", owner, repo))
}
