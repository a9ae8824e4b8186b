package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultAPIURL = "https://api.github.com"

// Sentinel contents used in place of blob text that cannot be decoded.
// These appear verbatim in the generated document.
const (
	SentinelNonText     = "Non-text content or unexpected format."
	SentinelUndecodable = "Error decoding content (possibly binary file)."
)

// TreeItem is one entry of a recursive git tree listing. Immutable once
// fetched: sha addresses the content, url is the API endpoint for it.
type TreeItem struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	URL  string `json:"url"`
}

// IsBlob reports whether the entry is a file rather than a directory.
func (t TreeItem) IsBlob() bool { return t.Type == "blob" }

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a new GitHub client. Requires GITHUB_TOKEN env var.
func NewClient() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Client{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewClientWith creates a client with an explicit token, base URL, and HTTP
// client. Used by tests and callers that manage credentials themselves.
func NewClientWith(token, apiURL string, httpCli *http.Client) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if httpCli == nil {
		httpCli = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		token:   token,
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: httpCli,
	}
}

// getJSON performs an authenticated GET and unmarshals the JSON response.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 404 {
		return fmt.Errorf("not found: %s", rawURL)
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("authentication failed: %s", string(body))
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// DefaultBranch fetches the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s", c.apiURL, owner, repo)
	var out struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return "", fmt.Errorf("resolving default branch for %s/%s: %w", owner, repo, err)
	}
	if out.DefaultBranch == "" {
		return "", fmt.Errorf("no default branch reported for %s/%s", owner, repo)
	}
	return out.DefaultBranch, nil
}

// BranchHead fetches the commit SHA at the head of a branch. This is the
// cheap call made on every run to decide tree-cache freshness.
func (c *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/branches/%s", c.apiURL, owner, repo, url.PathEscape(branch))
	var out struct {
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return "", fmt.Errorf("fetching head of %s/%s@%s: %w", owner, repo, branch, err)
	}
	if out.Commit.SHA == "" {
		return "", fmt.Errorf("no head commit reported for %s/%s@%s", owner, repo, branch)
	}
	return out.Commit.SHA, nil
}

// Tree fetches the full recursive tree listing for a branch. The truncated
// flag is set when GitHub capped the listing and the snapshot is partial.
func (c *Client) Tree(ctx context.Context, owner, repo, branch string) ([]TreeItem, bool, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.apiURL, owner, repo, url.PathEscape(branch))
	var out struct {
		Tree      []TreeItem `json:"tree"`
		Truncated bool       `json:"truncated"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, false, fmt.Errorf("fetching tree of %s/%s@%s: %w", owner, repo, branch, err)
	}
	return out.Tree, out.Truncated, nil
}

// Blob fetches and decodes one blob by its API URL. A missing content key or
// an undecodable payload yields a sentinel string, never an error; errors are
// reserved for transport and HTTP failures.
func (c *Client) Blob(ctx context.Context, blobURL string) (string, error) {
	var out struct {
		Content  *string `json:"content"`
		Encoding string  `json:"encoding"`
	}
	if err := c.getJSON(ctx, blobURL, &out); err != nil {
		return "", err
	}
	if out.Content == nil {
		return SentinelNonText, nil
	}
	return decodeContent(*out.Content), nil
}

// decodeContent turns the API's base64 payload (which contains embedded
// newlines) into text, or a sentinel for binary content.
func decodeContent(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, raw)
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return SentinelUndecodable
	}
	if !utf8.Valid(data) {
		return SentinelUndecodable
	}
	return string(data)
}

var (
	httpsRepoRe = regexp.MustCompile(`^https?://github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?/?$`)
	sshRepoRe   = regexp.MustCompile(`^[^@\s]+@github\.com:([^/\s]+)/([^/\s]+?)(?:\.git)?$`)
	bareRepoRe  = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*)/([A-Za-z0-9._-]+)$`)
)

// ParseRepoURL extracts owner/repo from a GitHub repository URL. Accepts
// HTTPS and SSH remote forms plus bare "owner/repo".
func ParseRepoURL(raw string) (owner, repo string, err error) {
	raw = strings.TrimSpace(raw)
	for _, re := range []*regexp.Regexp{httpsRepoRe, sshRepoRe, bareRepoRe} {
		if m := re.FindStringSubmatch(raw); len(m) == 3 {
			return m[1], m[2], nil
		}
	}
	return "", "", fmt.Errorf("invalid GitHub repository URL %q (expected https://github.com/owner/repo or git@github.com:owner/repo.git)", raw)
}
