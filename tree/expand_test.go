package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rnakao/marktree/scan"
)

func TestExpandState_AddRemoveToggle(t *testing.T) {
	state := NewExpandState()

	assert.False(t, state.Has("x"))

	state.Add("x")
	assert.True(t, state.Has("x"))

	state.Remove("x")
	assert.False(t, state.Has("x"))

	assert.True(t, state.Toggle("x"))
	assert.True(t, state.Has("x"))
	assert.False(t, state.Toggle("x"))
	assert.False(t, state.Has("x"))
}

// Two folders sharing a name in different locations are independent;
// the state is keyed by full path.
func TestExpandState_PathNotName(t *testing.T) {
	state := NewExpandState()
	state.Add("a/notes")

	assert.True(t, state.Has("a/notes"))
	assert.False(t, state.Has("b/notes"))
	assert.False(t, state.Has("notes"))
}

func TestExpandState_ExpandAllCollapseAll(t *testing.T) {
	res := scan.Result{
		"x/y/c.md": {{Line: 0}},
		"x/z/d.md": {{Line: 0}},
	}
	root := Build(res)
	state := NewExpandState()

	state.ExpandAll(CollectFolders(root))
	assert.True(t, state.Has("x"))
	assert.True(t, state.Has("x/y"))
	assert.True(t, state.Has("x/z"))

	state.CollapseAll()
	assert.Empty(t, state)
}

// Expansion survives a tree rebuild: paths that still exist remain
// expanded because the state never references nodes.
func TestExpandState_SurvivesRebuild(t *testing.T) {
	state := NewExpandState()
	state.Add("x")
	state.Add("x/y")

	rebuilt := Build(scan.Result{
		"x/y/c.md": {{Line: 0}},
	})

	for _, path := range CollectFolders(rebuilt) {
		if path == "x" || path == "x/y" {
			assert.True(t, state.Has(path))
		}
	}
}
