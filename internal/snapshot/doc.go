// Package snapshot is the engine behind a repository snapshot run: it decides
// tree-cache freshness by branch-head SHA, fans out one fetch goroutine per
// blob, and assembles results in traversal order. Per-file failures become
// inline placeholder contents so a run always produces a complete document.
package snapshot
