package tree

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/reposnap/internal/github"
)

func TestRender_TwoEntries(t *testing.T) {
	items := []github.TreeItem{
		{Path: "a.txt", Type: "blob"},
		{Path: "dir/b.txt", Type: "blob"},
	}

	lines := Render(Build(items))
	assert.Equal(t, []string{
		"├── a.txt",
		"└── dir",
		"    └── b.txt",
	}, lines)
}

func TestRender_NestedConnectors(t *testing.T) {
	items := []github.TreeItem{
		{Path: "dir/a.txt", Type: "blob"},
		{Path: "dir/b.txt", Type: "blob"},
		{Path: "dir/sub/c.txt", Type: "blob"},
		{Path: "z.txt", Type: "blob"},
	}

	lines := Render(Build(items))
	assert.Equal(t, []string{
		"├── dir",
		"│   ├── a.txt",
		"│   ├── b.txt",
		"│   └── sub",
		"│       └── c.txt",
		"└── z.txt",
	}, lines)
}

func TestRender_CaseInsensitiveOrder(t *testing.T) {
	items := []github.TreeItem{
		{Path: "Zebra.txt", Type: "blob"},
		{Path: "apple.txt", Type: "blob"},
		{Path: "Banana.txt", Type: "blob"},
	}

	lines := Render(Build(items))
	assert.Equal(t, []string{
		"├── apple.txt",
		"├── Banana.txt",
		"└── Zebra.txt",
	}, lines)
}

func TestBuild_ExplicitTreeEntries(t *testing.T) {
	// The recursive listing includes tree entries for directories; they must
	// not produce duplicate nodes alongside intermediate path segments.
	items := []github.TreeItem{
		{Path: "dir", Type: "tree"},
		{Path: "dir/b.txt", Type: "blob"},
	}

	lines := Render(Build(items))
	assert.Equal(t, []string{
		"└── dir",
		"    └── b.txt",
	}, lines)
}

func TestBuild_EmptyDirectory(t *testing.T) {
	items := []github.TreeItem{
		{Path: "empty", Type: "tree"},
		{Path: "a.txt", Type: "blob"},
	}

	lines := Render(Build(items))
	assert.Equal(t, []string{
		"├── a.txt",
		"└── empty",
	}, lines)
	assert.Equal(t, []string{"a.txt"}, Paths(Build(items)))
}

func TestPaths_RoundTrip(t *testing.T) {
	items := []github.TreeItem{
		{Path: "cmd/app/main.go", Type: "blob"},
		{Path: "internal/engine/engine.go", Type: "blob"},
		{Path: "internal/engine/engine_test.go", Type: "blob"},
		{Path: "README.md", Type: "blob"},
		{Path: "go.mod", Type: "blob"},
		{Path: "cmd", Type: "tree"},
		{Path: "cmd/app", Type: "tree"},
		{Path: "internal", Type: "tree"},
		{Path: "internal/engine", Type: "tree"},
	}

	root := Build(items)
	got := Paths(root)

	var want []string
	for _, item := range items {
		if item.IsBlob() {
			want = append(want, item.Path)
		}
	}
	sort.Strings(want)

	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	assert.Equal(t, want, sorted, "every blob path exactly once")

	// Paths order matches the rendered diagram's leaf order.
	lines := Render(root)
	var leafIdx int
	for _, line := range lines {
		name := line[strings.LastIndex(line, "── ")+len("── "):]
		if leafIdx < len(got) && filepathBase(got[leafIdx]) == name {
			leafIdx++
		}
	}
	assert.Equal(t, len(got), leafIdx, "rendered diagram contains every path leaf in order")
}

func filepathBase(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func TestRender_Empty(t *testing.T) {
	root := Build(nil)
	require.Empty(t, Render(root))
	require.Empty(t, Paths(root))
}

func TestRender_Deterministic(t *testing.T) {
	items := []github.TreeItem{
		{Path: "b/x.txt", Type: "blob"},
		{Path: "a.txt", Type: "blob"},
		{Path: "c/y.txt", Type: "blob"},
	}
	first := Render(Build(items))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(Build(items)))
	}
}
