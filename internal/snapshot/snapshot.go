package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dshills/reposnap/internal/cache"
	"github.com/dshills/reposnap/internal/comments"
	"github.com/dshills/reposnap/internal/github"
	"github.com/dshills/reposnap/internal/tree"
)

// Progress is called once per completed blob fetch, success or failure.
// Invocations are serialized and done increases by one each call.
type Progress func(done, total int, path string)

// Options configures one snapshot run.
type Options struct {
	Owner         string
	Repo          string
	Branch        string // empty selects the repository's default branch
	StripComments bool
	Progress      Progress
}

// File is one file of the snapshot in traversal order.
type File struct {
	Path    string
	Content string
}

// Result is the outcome of a snapshot run.
type Result struct {
	Owner     string
	Repo      string
	Branch    string
	CommitSHA string
	Structure []string
	Files     []File
	TreeHit   bool // tree served from cache, no tree-listing call made
	Truncated bool
}

// Engine coordinates the GitHub client and the two caches for snapshot runs.
type Engine struct {
	gh       *github.Client
	trees    *cache.TreeCache
	contents *cache.ContentStore

	// run-local content cache keyed by blob API URL. Shared by all fetch
	// goroutines of a run; racing writers all compute the same value.
	mu  sync.Mutex
	run map[string]string
}

// NewEngine creates an Engine.
func NewEngine(gh *github.Client, trees *cache.TreeCache, contents *cache.ContentStore) *Engine {
	return &Engine{
		gh:       gh,
		trees:    trees,
		contents: contents,
		run:      make(map[string]string),
	}
}

// Run fetches the repository tree (from cache when the branch head is
// unchanged) and all blob contents, returning the rendered structure and
// every file in traversal order. Structural failures abort; per-file
// failures become inline placeholders.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	branch := opts.Branch
	if branch == "" {
		b, err := e.gh.DefaultBranch(ctx, opts.Owner, opts.Repo)
		if err != nil {
			return nil, err
		}
		branch = b
	}

	head, err := e.gh.BranchHead(ctx, opts.Owner, opts.Repo, branch)
	if err != nil {
		return nil, err
	}

	entry, hit, err := e.loadTree(ctx, opts.Owner, opts.Repo, branch, head)
	if err != nil {
		return nil, err
	}
	if entry.Truncated {
		logger.WithField("repo", entry.Repo).Warn("tree listing truncated by GitHub; snapshot is partial")
	}

	root := tree.Build(entry.Tree)
	result := &Result{
		Owner:     opts.Owner,
		Repo:      opts.Repo,
		Branch:    branch,
		CommitSHA: head,
		Structure: tree.Render(root),
		TreeHit:   hit,
		Truncated: entry.Truncated,
	}

	byPath := make(map[string]github.TreeItem, len(entry.Tree))
	for _, item := range entry.Tree {
		if item.IsBlob() {
			byPath[item.Path] = item
		}
	}
	paths := tree.Paths(root)

	result.Files = e.fetchAll(ctx, paths, byPath, opts)
	return result, nil
}

// loadTree returns the cached tree when its recorded commit matches the live
// head, otherwise refreshes from the API and overwrites the cache. A
// truncated listing is persisted with its flag so later hits still report a
// partial snapshot.
func (e *Engine) loadTree(ctx context.Context, owner, repo, branch, head string) (*cache.TreeEntry, bool, error) {
	if entry, ok := e.trees.Load(owner, repo); ok && e.trees.Fresh(entry, head) {
		logger.WithFields(logger.Fields{"repo": entry.Repo, "sha": head}).Debug("tree cache hit")
		return entry, true, nil
	}

	items, truncated, err := e.gh.Tree(ctx, owner, repo, branch)
	if err != nil {
		return nil, false, err
	}
	entry := &cache.TreeEntry{
		Repo:      owner + "/" + repo,
		CommitSHA: head,
		Tree:      items,
		Truncated: truncated,
		CachedAt:  time.Now().UTC(),
	}
	e.trees.Store(owner, repo, entry)
	return entry, false, nil
}

// fetchAll dispatches one goroutine per blob and collects results by index,
// so document order follows traversal order regardless of completion order.
func (e *Engine) fetchAll(ctx context.Context, paths []string, byPath map[string]github.TreeItem, opts Options) []File {
	contents := make([]string, len(paths))
	total := len(paths)
	var done int

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			content, err := e.fetchContent(ctx, byPath[path])
			if err != nil {
				content = fmt.Sprintf("Error reading file: %s", err.Error())
			}
			contents[i] = content

			progressMu.Lock()
			done++
			if opts.Progress != nil {
				opts.Progress(done, total, path)
			}
			progressMu.Unlock()
		}(i, path)
	}
	wg.Wait()

	files := make([]File, len(paths))
	for i, path := range paths {
		content := contents[i]
		if opts.StripComments {
			content = comments.Strip(path, content)
		}
		files[i] = File{Path: path, Content: content}
	}
	return files
}

// fetchContent resolves one blob's content: run-local cache first, then the
// persistent store by SHA, then the network. A network success populates
// both caches.
func (e *Engine) fetchContent(ctx context.Context, item github.TreeItem) (string, error) {
	e.mu.Lock()
	if v, ok := e.run[item.URL]; ok {
		e.mu.Unlock()
		return v, nil
	}
	e.mu.Unlock()

	if v, ok := e.contents.Get(item.SHA); ok {
		logger.WithField("sha", item.SHA).Debug("content cache hit")
		e.remember(item.URL, v)
		return v, nil
	}

	v, err := e.gh.Blob(ctx, item.URL)
	if err != nil {
		return "", err
	}
	e.remember(item.URL, v)
	e.contents.Put(item.SHA, v)
	return v, nil
}

func (e *Engine) remember(url, content string) {
	e.mu.Lock()
	e.run[url] = content
	e.mu.Unlock()
}
