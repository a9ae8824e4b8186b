package tokencount

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter counts tokens in a string. The snapshot pipeline depends on this
// interface so tests can substitute a deterministic counter.
type Counter interface {
	Count(s string) int
}

// Tiktoken is a Counter backed by a tiktoken BPE encoding.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// New creates a Tiktoken counter for the named encoding (e.g. "cl100k_base").
func New(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokencount: get encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Count returns the number of tokens in s.
func (t *Tiktoken) Count(s string) int {
	return len(t.enc.Encode(s, nil, nil))
}

// Window is a model's context window size in tokens.
type Window struct {
	Model  string
	Tokens int
}

// DefaultWindows lists the context windows the summary reports against.
var DefaultWindows = []Window{
	{Model: "claude-sonnet-4-6", Tokens: 200000},
	{Model: "claude-opus-4-6", Tokens: 200000},
	{Model: "gpt-5.2", Tokens: 400000},
	{Model: "o3-mini", Tokens: 200000},
	{Model: "gemini-2.5-pro", Tokens: 1048576},
}

// Usage describes how much of one model's context window a document uses.
type Usage struct {
	Model   string
	Window  int
	Percent float64
	Fits    bool
}

// Usages computes context-window usage for a token count across windows.
func Usages(tokens int, windows []Window) []Usage {
	out := make([]Usage, 0, len(windows))
	for _, w := range windows {
		out = append(out, Usage{
			Model:   w.Model,
			Window:  w.Tokens,
			Percent: float64(tokens) / float64(w.Tokens) * 100,
			Fits:    tokens <= w.Tokens,
		})
	}
	return out
}
