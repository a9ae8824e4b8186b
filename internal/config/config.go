package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config represents the reposnap configuration.
type Config struct {
	OutputDir     string      `json:"outputDir"`
	Branch        string      `json:"branch,omitempty"`
	Encoding      string      `json:"encoding"`
	StripComments bool        `json:"stripComments"`
	Cache         CacheConfig `json:"cache"`
}

// CacheConfig controls the tree and content caches.
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		OutputDir: "output",
		Encoding:  "cl100k_base",
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for reposnap.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reposnap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "reposnap"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reposnap"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "reposnap"), nil
	default:
		return filepath.Join(home, ".config", "reposnap"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.OutputDir != "" {
		dst.OutputDir = src.OutputDir
	}
	if src.Branch != "" {
		dst.Branch = src.Branch
	}
	if src.Encoding != "" {
		dst.Encoding = src.Encoding
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	// Bool fields from file: JSON's zero value can't distinguish unset from
	// false in a simple merge, so the default stays unless the file enables.
	dst.StripComments = src.StripComments || dst.StripComments
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REPOSNAP_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("REPOSNAP_BRANCH"); v != "" {
		cfg.Branch = v
	}
	if v := os.Getenv("REPOSNAP_ENCODING"); v != "" {
		cfg.Encoding = v
	}
	if v := os.Getenv("REPOSNAP_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["outputDir"]; ok {
		cfg.OutputDir = v
	}
	if v, ok := overrides["branch"]; ok {
		cfg.Branch = v
	}
	if v, ok := overrides["encoding"]; ok {
		cfg.Encoding = v
	}
	if v, ok := overrides["cacheDir"]; ok {
		cfg.Cache.Dir = v
	}
	if _, ok := overrides["noCache"]; ok {
		cfg.Cache.Enabled = false
	}
	if _, ok := overrides["stripComments"]; ok {
		cfg.StripComments = true
	}
}
