package tree

import (
	"sort"
	"strings"

	"github.com/rnakao/marktree/scan"
)

// Node is one entry in the match tree: a folder or a file. The tree is
// rebuilt from scratch on every scan; nodes carry no identity across
// rebuilds, only their Path does.
type Node struct {
	Name       string
	Path       string // segments joined by "/", "" for the root
	IsFile     bool
	Children   map[string]*Node
	MatchCount int
	HasMatches bool
}

// Build converts a scan result into a tree rooted at a pseudo-node.
// File leaves take their match count from the result; folder counts and
// HasMatches are computed bottom-up. A result with no documents yields
// a root with MatchCount 0 and HasMatches false.
func Build(res scan.Result) *Node {
	root := &Node{Children: make(map[string]*Node)}

	for path, matches := range res {
		segments := strings.Split(path, "/")
		node := root
		for i, segment := range segments {
			child, ok := node.Children[segment]
			if !ok {
				child = &Node{
					Name:     segment,
					Path:     strings.Join(segments[:i+1], "/"),
					Children: make(map[string]*Node),
				}
				node.Children[segment] = child
			}
			node = child
		}
		node.IsFile = true
		node.MatchCount = len(matches)
	}

	finalize(root)
	return root
}

// finalize computes folder counts and HasMatches in one post-order pass.
func finalize(node *Node) {
	if !node.IsFile {
		sum := 0
		for _, child := range node.Children {
			finalize(child)
			sum += child.MatchCount
		}
		node.MatchCount = sum
	}
	node.HasMatches = node.MatchCount > 0
}

// Kids returns the children in render order: folders before files, then
// case-insensitive name order. Map iteration order never leaks into the
// view.
func (n *Node) Kids() []*Node {
	kids := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		kids = append(kids, child)
	}
	sort.Slice(kids, func(i, j int) bool {
		if kids[i].IsFile != kids[j].IsFile {
			return !kids[i].IsFile
		}
		return strings.ToLower(kids[i].Name) < strings.ToLower(kids[j].Name)
	})
	return kids
}

// CollectFolders returns the paths of every folder node below the root,
// in render order. The pseudo-root itself is not included.
func CollectFolders(root *Node) []string {
	var paths []string
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Kids() {
			if child.IsFile {
				continue
			}
			paths = append(paths, child.Path)
			walk(child)
		}
	}
	walk(root)
	return paths
}
