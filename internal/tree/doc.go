// Package tree turns the flat path list returned by the git trees API into a
// nested hierarchy and renders it as a box-drawing directory diagram. All
// functions are pure and deterministic.
package tree
