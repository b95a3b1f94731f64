package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rnakao/marktree/scan"
)

const (
	headerHeight  = 4
	previewHeight = 16
)

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	vaultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Tree styles
	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25"))

	// Preview styles
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Bold(true)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6).
			Align(lipgloss.Right)

	hitLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236"))

	hitLineNumberStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("236")).
				Width(6).
				Align(lipgloss.Right)

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("236")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// renderView renders the entire UI: header, tree, preview.
func renderView(m *Model) string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{
		renderHeader(m),
		renderTree(m),
		renderPreview(m),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title, vault path and status line.
func renderHeader(m *Model) string {
	title := titleStyle.Render("🔖 marktree")
	vault := vaultStyle.Render(m.cfg.Root)
	headerLine := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", vault)

	statusLine := statusStyle.Render(renderStatus(m))

	header := lipgloss.JoinVertical(lipgloss.Left, headerLine, statusLine)
	return headerStyle.Width(m.width - 2).Render(header)
}

// renderStatus renders the status information.
func renderStatus(m *Model) string {
	if m.scanErr != nil {
		return fmt.Sprintf("Error: %s", m.scanErr.Error())
	}
	if m.scanning {
		return "Scanning..."
	}

	status := fmt.Sprintf("%d matches in %d files", m.res.TotalMatches(), m.res.FileCount())
	if m.res.TotalMatches() == 1 {
		status = "1 match in 1 file"
	}
	if len(m.cfg.Markers) == 0 {
		status = "No markers configured"
	}
	if m.watchErr != nil {
		status += "  (watch unavailable, press r to rescan)"
	}
	return status
}

// renderTree renders the visible window of tree rows.
func renderTree(m *Model) string {
	height := m.treeHeight()

	if len(m.rows) == 0 {
		empty := "No markers found"
		if m.scanning && m.root == nil {
			empty = ""
		}
		return lipgloss.NewStyle().Height(height).Render(statusStyle.Render(empty))
	}

	end := m.offset + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, height)
	for i := m.offset; i < end; i++ {
		lines = append(lines, formatRow(m.rows[i], i == m.selected, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatRow renders a single tree row. The selected row gets a uniform
// highlight instead of its per-kind colors.
func formatRow(row Row, selected bool, width int) string {
	indent := strings.Repeat("  ", row.Depth)

	var text, badge string
	switch row.Kind {
	case RowFolder:
		arrow := "▸"
		if row.Expanded {
			arrow = "▾"
		}
		text = fmt.Sprintf("%s%s %s", indent, arrow, row.Node.Name)
		badge = fmt.Sprintf(" (%d)", row.Node.MatchCount)
	case RowFile:
		text = fmt.Sprintf("%s%s", indent, row.Node.Name)
		badge = fmt.Sprintf(" (%d)", row.Node.MatchCount)
	case RowMatch:
		text = fmt.Sprintf("%s%s %s", indent, iconFor(row.Match.Text), row.Match.Text)
	}

	max := width - lipgloss.Width(badge) - 1
	if max < 1 {
		max = 1
	}
	text = runewidth.Truncate(text, max, "…")

	if selected {
		return selectedRowStyle.Width(width).Render(text + badge)
	}

	switch row.Kind {
	case RowFolder:
		return folderStyle.Render(text) + badgeStyle.Render(badge)
	case RowFile:
		return fileStyle.Render(text) + badgeStyle.Render(badge)
	default:
		return matchStyle.Render(text)
	}
}

// iconFor picks a row icon by sniffing the match text for well-known
// marker keywords.
func iconFor(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "todo"):
		return "☐"
	case strings.Contains(lower, "fixme"):
		return "⚠"
	case strings.Contains(lower, "note"):
		return "✎"
	default:
		return "•"
	}
}

// renderPreview renders the document excerpt for the selected match.
func renderPreview(m *Model) string {
	inner := m.width - 12 // borders, padding, line number gutter
	if inner < 10 {
		inner = 10
	}

	var lines []string
	switch {
	case m.previewErr != nil:
		lines = append(lines, errorStyle.Render("Error loading preview: "+m.previewErr.Error()))

	case m.preview == nil:
		lines = append(lines, "")

	default:
		p := m.preview
		header := fmt.Sprintf("%s:%d", p.Path, p.StartLine+p.HitIndex+1)
		lines = append(lines, previewHeaderStyle.Render(header))

		for i, line := range p.Lines {
			if len(lines) >= previewHeight-2 {
				break
			}
			lineNum := fmt.Sprintf("%4d", p.StartLine+i+1)
			if i == p.HitIndex {
				line = highlightMarkers(line, m.cfg.Markers, inner)
				lines = append(lines, fmt.Sprintf("%s | %s", hitLineNumberStyle.Render(lineNum), hitLineStyle.Render(line)))
			} else {
				line = runewidth.Truncate(line, inner, "…")
				lines = append(lines, fmt.Sprintf("%s | %s", lineNumberStyle.Render(lineNum), line))
			}
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return previewStyle.Width(m.width - 2).Height(previewHeight - 2).Render(content)
}

// highlightMarkers emphasizes every marker occurrence in the hit line.
// Occurrences are located with scan.IndexFold so the slice offsets index
// the line itself; offsets from a lowered copy would drift on runes
// whose lowercase form has a different byte length.
func highlightMarkers(line string, markers []string, maxWidth int) string {
	line = runewidth.Truncate(line, maxWidth, "…")

	var parts []string
	last := 0
	for pos := 0; pos < len(line); {
		start, end := -1, -1
		for _, mk := range markers {
			if mk == "" {
				continue
			}
			if s, e := scan.IndexFold(line[pos:], mk); s >= 0 {
				if start < 0 || pos+s < start {
					start, end = pos+s, pos+e
				}
			}
		}
		if start < 0 {
			break
		}
		if start > last {
			parts = append(parts, line[last:start])
		}
		parts = append(parts, markerStyle.Render(line[start:end]))
		last = end
		pos = end
	}
	if last < len(line) {
		parts = append(parts, line[last:])
	}
	return strings.Join(parts, "")
}
