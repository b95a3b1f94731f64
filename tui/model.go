package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rnakao/marktree/config"
	"github.com/rnakao/marktree/editor"
	"github.com/rnakao/marktree/preview"
	"github.com/rnakao/marktree/scan"
	"github.com/rnakao/marktree/tree"
	"github.com/rnakao/marktree/watch"
)

// Model represents the application state: the latest scan result, the
// tree built from it, the expansion state of the folder rows, and the
// flattened rows the view draws.
type Model struct {
	cfg     *config.Config
	scanner *scan.Scanner
	watcher *watch.Watcher
	keys    keyMap

	// Scan state
	res      scan.Result
	root     *tree.Node
	rows     []Row
	scanning bool
	scanErr  error
	watchErr error

	// UI state
	state    tree.ExpandState
	selected int
	offset   int // scroll offset into rows

	// Preview state
	preview    *preview.Preview
	previewErr error

	// UI dimensions
	width  int
	height int
}

// New creates a Model. The watcher may be nil when file watching could
// not be set up; the view then falls back to manual refresh and shows
// watchErr in the status line.
func New(cfg *config.Config, watcher *watch.Watcher, watchErr error) *Model {
	source := scan.NewDirSource(cfg.Root, cfg.Include)
	return &Model{
		cfg:      cfg,
		scanner:  scan.NewScanner(source, cfg.Markers),
		watcher:  watcher,
		watchErr: watchErr,
		keys:     defaultKeyMap(),
		state:    tree.NewExpandState(),
		selected: -1,
	}
}

// Init starts the initial scan and the refresh listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), m.listenRefresh())
}

// scanDoneMsg carries the outcome of one scan pass.
type scanDoneMsg struct {
	res scan.Result
	err error
}

// refreshTickMsg is sent when the watcher's debounced refresh fires.
type refreshTickMsg struct{}

// previewLoadedMsg carries a loaded preview.
type previewLoadedMsg struct {
	preview *preview.Preview
	err     error
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshTickMsg:
		return m, tea.Batch(m.scanCmd(), m.listenRefresh())

	case scanDoneMsg:
		return m.handleScanDone(msg)

	case previewLoadedMsg:
		if msg.err != nil {
			m.previewErr = msg.err
			m.preview = nil
		} else {
			m.preview = msg.preview
			m.previewErr = nil
		}
		return m, nil

	default:
		return m, nil
	}
}

// View renders the UI.
func (m *Model) View() string {
	return renderView(m)
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.handleOpen()

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selectedRow(); ok && row.Kind == RowFolder {
			m.state.Toggle(row.Path)
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		if m.root != nil {
			m.state.ExpandAll(tree.CollectFolders(m.root))
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.CollapseAll):
		m.state.CollapseAll()
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.scanCmd()

	default:
		return m, nil
	}
}

// handleOpen acts on the selected row: matches open in the editor,
// folders toggle, file headers open at their first match.
func (m *Model) handleOpen() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}

	switch row.Kind {
	case RowFolder:
		m.state.Toggle(row.Path)
		m.rebuildRows()
		return m, nil

	case RowFile:
		matches := m.res[row.Path]
		if len(matches) == 0 {
			return m, nil
		}
		m.openMatch(row.Path, matches[0])
		return m, nil

	case RowMatch:
		m.openMatch(row.Path, row.Match)
		return m, nil
	}
	return m, nil
}

// openMatch hands the match off to the external editor. Failures are
// logged and never crash the view; a document deleted since the scan
// simply does not open.
func (m *Model) openMatch(path string, match scan.Match) {
	abs := filepath.Join(m.cfg.Root, filepath.FromSlash(path))
	if err := editor.OpenAt(m.cfg.Editor, abs, match.Line+1, match.Col+1); err != nil {
		slog.Warn("failed to open match in editor", "path", path, "line", match.Line, "error", err)
	}
}

// scanCmd runs one full scan pass off the update loop.
func (m *Model) scanCmd() tea.Cmd {
	m.scanning = true
	scanner := m.scanner
	return func() tea.Msg {
		res, err := scanner.Scan(context.Background())
		return scanDoneMsg{res: res, err: err}
	}
}

// listenRefresh waits for the next debounced refresh signal.
func (m *Model) listenRefresh() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	refresh := m.watcher.Refresh()
	return func() tea.Msg {
		if _, ok := <-refresh; !ok {
			return nil
		}
		return refreshTickMsg{}
	}
}

// handleScanDone swaps in the new scan result and rebuilds the tree.
// Expansion survives the rebuild because the state is keyed by folder
// path, not by node.
func (m *Model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.scanning = false
	if msg.err != nil {
		m.scanErr = fmt.Errorf("scan failed: %w", msg.err)
		return m, nil
	}

	m.scanErr = nil
	m.res = msg.res
	m.root = tree.Build(msg.res)
	m.rebuildRows()
	return m, m.loadPreview()
}

// rebuildRows re-derives the visible rows and keeps the selection
// within bounds.
func (m *Model) rebuildRows() {
	m.rows = BuildRows(m.root, m.res, m.state)
	if len(m.rows) == 0 {
		m.selected = -1
		m.offset = 0
		m.preview = nil
		m.previewErr = nil
		return
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	m.adjustScroll()
}

func (m *Model) selectedRow() (Row, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.selected], true
}

// loadPreview loads the preview for the selected row, when it points at
// a document.
func (m *Model) loadPreview() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || row.Kind == RowFolder {
		m.preview = nil
		m.previewErr = nil
		return nil
	}

	match := row.Match
	if row.Kind == RowFile {
		matches := m.res[row.Path]
		if len(matches) == 0 {
			return nil
		}
		match = matches[0]
	}

	root := m.cfg.Root
	path := row.Path
	return func() tea.Msg {
		p, err := preview.Load(root, path, match.Line)
		return previewLoadedMsg{preview: p, err: err}
	}
}

// adjustScroll keeps the selected row inside the visible tree area.
func (m *Model) adjustScroll() {
	visible := m.treeHeight()
	if len(m.rows) <= visible {
		m.offset = 0
		return
	}

	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if max := len(m.rows) - visible; m.offset > max {
		m.offset = max
	}
}

// treeHeight is the number of rows the tree area can show.
func (m *Model) treeHeight() int {
	h := m.height - headerHeight - previewHeight
	if h < 3 {
		return 3
	}
	return h
}
