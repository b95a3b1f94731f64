package scan

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Source enumerates the documents of a corpus.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// DirSource reads documents from a vault directory on disk, selecting
// files by glob patterns relative to the root.
type DirSource struct {
	root    string
	include []string
}

// NewDirSource creates a DirSource rooted at the given directory.
// Include patterns use doublestar syntax (e.g. "**/*.md").
func NewDirSource(root string, include []string) *DirSource {
	return &DirSource{root: root, include: include}
}

// Root returns the vault root directory.
func (d *DirSource) Root() string {
	return d.root
}

// Documents walks the vault and reads every included file. A file that
// cannot be read is skipped so a single bad document never aborts the
// scan; the rest of the corpus still refreshes.
func (d *DirSource) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(d.root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			if path != d.root && IgnoredDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !d.included(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable document", "path", rel, "error", err)
			return nil
		}
		docs = append(docs, Document{Path: rel, Text: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// included reports whether a vault-relative path matches any include
// pattern. An empty pattern list includes everything.
func (d *DirSource) included(rel string) bool {
	if len(d.include) == 0 {
		return true
	}
	for _, pattern := range d.include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// IgnoredDir reports whether a directory should be excluded from both
// scanning and file watching. Hidden directories cover .git and
// .obsidian; node_modules shows up in vaults that double as projects.
func IgnoredDir(name string) bool {
	if name == "node_modules" {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
