package tree

import (
	"sort"
	"strings"

	"github.com/dshills/reposnap/internal/github"
)

// Node is one entry in the nested repository hierarchy.
type Node struct {
	Name     string
	IsDir    bool
	children map[string]*Node
}

// Build converts the flat recursive-tree listing into a nested hierarchy.
// Directories come from both explicit tree entries and the intermediate
// segments of blob paths.
func Build(items []github.TreeItem) *Node {
	root := &Node{IsDir: true, children: map[string]*Node{}}
	for _, item := range items {
		segments := strings.Split(item.Path, "/")
		node := root
		for i, seg := range segments {
			last := i == len(segments)-1
			child, ok := node.children[seg]
			if !ok {
				child = &Node{
					Name:     seg,
					IsDir:    !last || !item.IsBlob(),
					children: map[string]*Node{},
				}
				node.children[seg] = child
			} else if !last || !item.IsBlob() {
				child.IsDir = true
			}
			node = child
		}
	}
	return root
}

// sortedChildren returns a node's children in rendering order:
// case-insensitive by name, directory first on a name tie.
func (n *Node) sortedChildren() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	return out
}

// Render produces the directory-tree diagram, one line per entry, with
// box-drawing connectors and a distinct terminal connector for the last
// entry in each directory.
func Render(root *Node) []string {
	var lines []string
	renderChildren(root, "", &lines)
	return lines
}

func renderChildren(n *Node, prefix string, lines *[]string) {
	children := n.sortedChildren()
	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}
		*lines = append(*lines, prefix+connector+child.Name)
		if child.IsDir {
			renderChildren(child, prefix+extension, lines)
		}
	}
}

// Paths returns every file path in the hierarchy exactly once, in the same
// depth-first order Render walks. This order fixes the document layout.
func Paths(root *Node) []string {
	var paths []string
	collectPaths(root, "", &paths)
	return paths
}

func collectPaths(n *Node, base string, paths *[]string) {
	for _, child := range n.sortedChildren() {
		full := child.Name
		if base != "" {
			full = base + "/" + child.Name
		}
		if child.IsDir {
			collectPaths(child, full, paths)
		} else {
			*paths = append(*paths, full)
		}
	}
}
