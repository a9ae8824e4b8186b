// Package comments strips source-code comments with per-extension regexes,
// trading precision for zero parsing dependencies. Used to shrink snapshots
// that would otherwise blow a model's context window.
package comments
