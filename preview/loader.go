package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	contextBefore = 4
	contextAfter  = 8
)

// Load builds a preview for the document at the given vault-relative
// path, centered on the 0-based match line. The file is re-read on
// every call so the preview reflects the document as it is now, not as
// it was at scan time.
func Load(root, path string, line int) (*Preview, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if line < 0 || line >= len(lines) {
		return nil, fmt.Errorf("line %d out of range for %s", line, path)
	}

	start := line - contextBefore
	if start < 0 {
		start = 0
	}
	end := line + contextAfter + 1
	if end > len(lines) {
		end = len(lines)
	}

	return &Preview{
		Path:      path,
		StartLine: start,
		Lines:     lines[start:end],
		HitIndex:  line - start,
	}, nil
}
