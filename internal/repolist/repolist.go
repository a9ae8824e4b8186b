package repolist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/reposnap/internal/config"
)

// Store persists the list of previously snapshotted repository URLs.
type Store struct {
	path string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the repos file location inside the config directory.
func DefaultPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repos.json"), nil
}

// Load reads the saved URLs. A missing, corrupt, or non-list file yields an
// empty list rather than an error.
func (s *Store) Load() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var repos []string
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil
	}
	return repos
}

// Save writes the URL list, creating the parent directory if needed.
func (s *Store) Save(repos []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating repos directory: %w", err)
	}
	data, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling repos: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Add appends a URL if it is not already saved.
func (s *Store) Add(url string) error {
	repos := s.Load()
	for _, r := range repos {
		if r == url {
			return nil
		}
	}
	return s.Save(append(repos, url))
}

// Remove deletes a URL from the list if present.
func (s *Store) Remove(url string) error {
	repos := s.Load()
	out := repos[:0]
	var found bool
	for _, r := range repos {
		if r == url {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return nil
	}
	return s.Save(out)
}
