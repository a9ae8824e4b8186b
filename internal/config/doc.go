// Package config loads and persists reposnap configuration as JSON in the
// platform config directory, merging defaults, file, environment, and CLI
// flag overrides in that order.
package config
