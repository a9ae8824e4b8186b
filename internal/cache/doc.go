// Package cache provides the two persistent caches behind the snapshot
// engine: a per-repository tree cache invalidated by branch-head SHA
// mismatch, and a per-blob content store keyed by content SHA. Both are
// best-effort; every failure falls back to network-sourced truth.
package cache
