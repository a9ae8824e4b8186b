package output

import (
	"fmt"
	"io"

	"github.com/dshills/reposnap/internal/snapshot"
	"github.com/dshills/reposnap/internal/tokencount"
)

// Summary is the human-readable run report printed after the document is
// written.
type Summary struct {
	Result   *snapshot.Result
	OutPath  string
	Tokens   int
	Encoding string
	Usages   []tokencount.Usage
}

// SummaryWriter prints a run summary with token counts against known model
// context windows.
type SummaryWriter struct{}

func (s *SummaryWriter) Write(w io.Writer, sum Summary) error {
	res := sum.Result
	short := res.CommitSHA
	if len(short) > 7 {
		short = short[:7]
	}
	fmt.Fprintf(w, "Snapshot of %s/%s@%s (commit %s)\n", res.Owner, res.Repo, res.Branch, short)
	if res.TreeHit {
		fmt.Fprintln(w, "Tree served from cache.")
	}
	if res.Truncated {
		fmt.Fprintln(w, "Warning: tree listing was truncated; snapshot is partial.")
	}
	fmt.Fprintf(w, "Files: %d\n", len(res.Files))
	fmt.Fprintf(w, "Output: %s\n", sum.OutPath)
	if sum.Encoding != "" {
		fmt.Fprintf(w, "Tokens: %d (%s)\n", sum.Tokens, sum.Encoding)
	}

	if len(sum.Usages) > 0 {
		fmt.Fprintln(w, "\nContext window usage:")
		for _, u := range sum.Usages {
			mark := "fits"
			if !u.Fits {
				mark = "exceeds"
			}
			fmt.Fprintf(w, "  %-20s %9d  %6.1f%%  %s\n", u.Model, u.Window, u.Percent, mark)
		}
	}
	return nil
}
