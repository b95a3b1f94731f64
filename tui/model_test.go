package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnakao/marktree/config"
	"github.com/rnakao/marktree/scan"
	"github.com/rnakao/marktree/tree"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	cfg := &config.Config{
		Root:     t.TempDir(),
		Markers:  config.DefaultMarkers(),
		Include:  []string{"**/*.md"},
		Debounce: 300 * time.Millisecond,
	}
	m := New(cfg, nil, nil)
	m.width = 80
	m.height = 40
	return m
}

func deliverScan(m *Model, res scan.Result) {
	m.handleScanDone(scanDoneMsg{res: res})
}

func TestModel_ScanDoneBuildsRows(t *testing.T) {
	m := testModel(t)

	deliverScan(m, scan.Result{
		"a.md": {{Text: "TODO: fix", Line: 0}, {Text: "FIXME later", Line: 2}},
	})

	require.NotNil(t, m.root)
	require.Len(t, m.rows, 3)
	assert.Equal(t, 0, m.selected)
	assert.NoError(t, m.scanErr)
}

func TestModel_ExpansionSurvivesRescan(t *testing.T) {
	m := testModel(t)

	res := scan.Result{
		"x/y/c.md": {{Text: "todo one", Line: 0}},
	}
	deliverScan(m, res)

	m.state.ExpandAll(tree.CollectFolders(m.root))
	m.rebuildRows()
	require.Len(t, m.rows, 4)

	// A fresh scan rebuilds the tree; x and x/y must still be open.
	deliverScan(m, res)
	assert.Len(t, m.rows, 4)
	assert.True(t, m.state.Has("x"))
	assert.True(t, m.state.Has("x/y"))
}

func TestModel_CollapseAllClosesEveryFolder(t *testing.T) {
	m := testModel(t)

	deliverScan(m, scan.Result{
		"x/y/c.md": {{Text: "todo one", Line: 0}},
		"x/z/d.md": {{Text: "fixme two", Line: 0}},
	})
	m.state.ExpandAll(tree.CollectFolders(m.root))
	m.rebuildRows()
	require.Greater(t, len(m.rows), 1)

	m.state.CollapseAll()
	m.rebuildRows()

	assert.Empty(t, m.state)
	require.Len(t, m.rows, 1)
	assert.False(t, m.rows[0].Expanded)
}

func TestModel_EmptyScanClearsView(t *testing.T) {
	m := testModel(t)

	deliverScan(m, scan.Result{
		"a.md": {{Text: "todo", Line: 0}},
	})
	require.NotEmpty(t, m.rows)

	deliverScan(m, scan.Result{})

	assert.Empty(t, m.rows)
	assert.Equal(t, -1, m.selected)
	assert.Nil(t, m.preview)
}

func TestModel_SelectionClampedAfterShrink(t *testing.T) {
	m := testModel(t)

	deliverScan(m, scan.Result{
		"a.md": {{Text: "todo 1", Line: 0}, {Text: "todo 2", Line: 1}},
	})
	m.selected = 2

	deliverScan(m, scan.Result{
		"a.md": {{Text: "todo 1", Line: 0}},
	})

	assert.Equal(t, 1, m.selected)
}
