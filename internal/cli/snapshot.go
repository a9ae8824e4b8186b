package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/reposnap/internal/cache"
	"github.com/dshills/reposnap/internal/config"
	"github.com/dshills/reposnap/internal/github"
	"github.com/dshills/reposnap/internal/output"
	"github.com/dshills/reposnap/internal/repolist"
	"github.com/dshills/reposnap/internal/snapshot"
	"github.com/dshills/reposnap/internal/tokencount"
)

var (
	flagBranch        string
	flagOutputDir     string
	flagCacheDir      string
	flagNoCache       bool
	flagStripComments bool
	flagEncoding      string
	flagQuiet         bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [repository-url]",
	Short: "Fetch a repository and write it as one markdown document",
	Long: `Fetch a GitHub repository's tree and contents and write a markdown
document with the directory structure and every file. With no argument, a
menu of previously used repository URLs is offered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return fail(ExitRuntimeError, err)
		}

		store := repolist.New(reposPath())
		repoURL, err := resolveRepoURL(args, store)
		if err != nil {
			return fail(ExitUsageError, err)
		}
		if repoURL == "" {
			fmt.Fprintln(os.Stdout, "Operation cancelled.")
			return nil
		}

		owner, repo, err := github.ParseRepoURL(repoURL)
		if err != nil {
			return fail(ExitUsageError, err)
		}

		gh, err := github.NewClient()
		if err != nil {
			return fail(ExitAuthError, err)
		}

		if err := runSnapshot(cmd.Context(), gh, cfg, owner, repo, repoURL, store); err != nil {
			return fail(ExitRuntimeError, err)
		}
		return nil
	},
}

func runSnapshot(ctx context.Context, gh *github.Client, cfg config.Config, owner, repo, repoURL string, store *repolist.Store) error {
	trees, err := cache.NewTreeCache(cfg.Cache.Enabled, cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("opening tree cache: %w", err)
	}
	contents, err := cache.NewContentStore(cfg.Cache.Enabled, cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("opening content store: %w", err)
	}

	engine := snapshot.NewEngine(gh, trees, contents)
	opts := snapshot.Options{
		Owner:         owner,
		Repo:          repo,
		Branch:        cfg.Branch,
		StripComments: cfg.StripComments,
	}
	if !flagQuiet {
		opts.Progress = func(done, total int, path string) {
			fmt.Fprintf(os.Stderr, "\rFetching files... %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	res, err := engine.Run(ctx, opts)
	if err != nil {
		return err
	}

	// Remember the URL only after a successful run.
	if err := store.Add(repoURL); err != nil {
		logger.WithError(err).Warn("could not save repository URL")
	}

	var buf bytes.Buffer
	mw := &output.MarkdownWriter{}
	if err := mw.Write(&buf, res); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutputDir, repo+".md")
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}

	sum := output.Summary{Result: res, OutPath: outPath}
	if counter, err := tokencount.New(cfg.Encoding); err != nil {
		logger.WithError(err).Warn("token count unavailable")
	} else {
		sum.Tokens = counter.Count(buf.String())
		sum.Encoding = cfg.Encoding
		sum.Usages = tokencount.Usages(sum.Tokens, tokencount.DefaultWindows)
	}

	sw := &output.SummaryWriter{}
	return sw.Write(os.Stdout, sum)
}

// resolveRepoURL returns the URL argument when given, otherwise prompts with
// the saved list. An empty URL with nil error means the user cancelled.
func resolveRepoURL(args []string, store *repolist.Store) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return chooseRepo(os.Stdin, os.Stdout, store.Load())
}

// chooseRepo presents a numbered menu of saved repository URLs plus options
// to enter a new one or exit.
func chooseRepo(in io.Reader, out io.Writer, repos []string) (string, error) {
	fmt.Fprintln(out, "Saved GitHub repository URLs:")
	for i, r := range repos {
		fmt.Fprintf(out, "  %d. %s\n", i+1, r)
	}
	fmt.Fprintf(out, "  %d. Enter new repository\n", len(repos)+1)
	fmt.Fprintf(out, "  %d. Exit\n", len(repos)+2)
	fmt.Fprint(out, "Select: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", nil
	}
	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || choice < 1 || choice > len(repos)+2 {
		return "", fmt.Errorf("invalid selection")
	}
	switch {
	case choice <= len(repos):
		return repos[choice-1], nil
	case choice == len(repos)+1:
		fmt.Fprint(out, "Enter a new GitHub repository URL: ")
		if !scanner.Scan() {
			return "", nil
		}
		return strings.TrimSpace(scanner.Text()), nil
	default:
		return "", nil
	}
}

func reposPath() string {
	path, err := repolist.DefaultPath()
	if err != nil {
		logger.WithError(err).Warn("using repos.json in the working directory")
		return "repos.json"
	}
	return path
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagBranch != "" {
		m["branch"] = flagBranch
	}
	if flagOutputDir != "" {
		m["outputDir"] = flagOutputDir
	}
	if flagCacheDir != "" {
		m["cacheDir"] = flagCacheDir
	}
	if flagNoCache {
		m["noCache"] = "true"
	}
	if flagStripComments {
		m["stripComments"] = "true"
	}
	if flagEncoding != "" {
		m["encoding"] = flagEncoding
	}
	return m
}

func init() {
	snapshotCmd.Flags().StringVar(&flagBranch, "branch", "", "Branch to snapshot (default: repository default branch)")
	snapshotCmd.Flags().StringVar(&flagOutputDir, "out", "", "Directory for the generated document")
	snapshotCmd.Flags().StringVar(&flagCacheDir, "cache-dir", "", "Cache directory")
	snapshotCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the tree and content caches")
	snapshotCmd.Flags().BoolVar(&flagStripComments, "strip-comments", false, "Strip source comments from file contents")
	snapshotCmd.Flags().StringVar(&flagEncoding, "encoding", "", "Tokenizer encoding (default cl100k_base)")
	snapshotCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress the progress indicator")
}
