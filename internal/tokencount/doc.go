// Package tokencount counts document tokens with tiktoken and reports usage
// against known language-model context windows.
package tokencount
