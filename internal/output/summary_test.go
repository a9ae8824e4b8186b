package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/reposnap/internal/snapshot"
	"github.com/dshills/reposnap/internal/tokencount"
)

func TestSummaryWriter(t *testing.T) {
	res := &snapshot.Result{
		Owner:     "owner",
		Repo:      "repo",
		Branch:    "main",
		CommitSHA: "abcdef1234567890",
		Files:     []snapshot.File{{Path: "a.txt"}, {Path: "b.txt"}},
		TreeHit:   true,
	}
	sum := Summary{
		Result:   res,
		OutPath:  "output/repo.md",
		Tokens:   150000,
		Encoding: "cl100k_base",
		Usages: []tokencount.Usage{
			{Model: "claude-sonnet-4-6", Window: 200000, Percent: 75, Fits: true},
			{Model: "small-model", Window: 100000, Percent: 150, Fits: false},
		},
	}

	var buf bytes.Buffer
	sw := &SummaryWriter{}
	require.NoError(t, sw.Write(&buf, sum))

	out := buf.String()
	assert.Contains(t, out, "Snapshot of owner/repo@main (commit abcdef1)")
	assert.Contains(t, out, "Tree served from cache.")
	assert.Contains(t, out, "Files: 2")
	assert.Contains(t, out, "Output: output/repo.md")
	assert.Contains(t, out, "Tokens: 150000 (cl100k_base)")
	assert.Contains(t, out, "claude-sonnet-4-6")
	assert.Contains(t, out, "fits")
	assert.Contains(t, out, "exceeds")
}

func TestSummaryWriter_NoUsages(t *testing.T) {
	sum := Summary{
		Result: &snapshot.Result{Owner: "o", Repo: "r", Branch: "main", CommitSHA: "abc"},
	}

	var buf bytes.Buffer
	sw := &SummaryWriter{}
	require.NoError(t, sw.Write(&buf, sum))
	assert.NotContains(t, buf.String(), "Context window usage")
}
