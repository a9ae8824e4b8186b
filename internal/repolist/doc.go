// Package repolist persists the list of saved repository URLs offered by the
// interactive snapshot prompt.
package repolist
