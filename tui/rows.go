package tui

import (
	"github.com/rnakao/marktree/scan"
	"github.com/rnakao/marktree/tree"
)

// RowKind discriminates the visible row types.
type RowKind int

const (
	RowFolder RowKind = iota
	RowFile
	RowMatch
)

// Row is one visible line of the match tree. The row list is rebuilt
// wholesale after every scan and every expansion change; persistence of
// the open folders comes from the path-keyed ExpandState, not from the
// rows themselves.
type Row struct {
	Kind     RowKind
	Depth    int
	Node     *tree.Node // folder and file rows
	Path     string     // document path, set on file and match rows
	Match    scan.Match // match rows only
	Expanded bool       // folder rows only
}

// BuildRows flattens the tree into the rows the view shows. Subtrees
// without matches are skipped entirely, collapsed folders contribute
// only their own row, and file rows are followed by one row per match.
// The pseudo-root is not rendered; its children appear at depth 0.
func BuildRows(root *tree.Node, res scan.Result, state tree.ExpandState) []Row {
	var rows []Row
	appendNode(&rows, root, res, state, 0)
	return rows
}

func appendNode(rows *[]Row, node *tree.Node, res scan.Result, state tree.ExpandState, depth int) {
	for _, child := range node.Kids() {
		if !child.HasMatches {
			continue
		}
		if child.IsFile {
			*rows = append(*rows, Row{
				Kind:  RowFile,
				Depth: depth,
				Node:  child,
				Path:  child.Path,
			})
			for _, match := range res[child.Path] {
				*rows = append(*rows, Row{
					Kind:  RowMatch,
					Depth: depth + 1,
					Path:  child.Path,
					Match: match,
				})
			}
			continue
		}

		expanded := state.Has(child.Path)
		*rows = append(*rows, Row{
			Kind:     RowFolder,
			Depth:    depth,
			Node:     child,
			Path:     child.Path,
			Expanded: expanded,
		})
		if expanded {
			appendNode(rows, child, res, state, depth+1)
		}
	}
}
