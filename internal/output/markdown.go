package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/reposnap/internal/snapshot"
)

// MarkdownWriter renders a snapshot as a single markdown document: the
// directory diagram first, then every file in traversal order. Output is
// byte-identical across runs for an unchanged repository.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, res *snapshot.Result) error {
	if _, err := fmt.Fprintf(w, "# Repository Structure\n\n```\n%s\n```\n\n", strings.Join(res.Structure, "\n")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# File Contents\n\n"); err != nil {
		return err
	}
	for _, f := range res.Files {
		if _, err := fmt.Fprintf(w, "## %s\n\n```\n%s\n```\n\n", f.Path, f.Content); err != nil {
			return err
		}
	}
	return nil
}
