// Package output renders snapshot results: the markdown document itself and
// the terminal summary with token counts.
package output
