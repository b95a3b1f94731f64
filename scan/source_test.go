package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func docPaths(docs []Document) []string {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.Path)
	}
	return paths
}

func TestDirSource_IncludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "todo")
	writeFile(t, root, "notes/b.md", "todo")
	writeFile(t, root, "notes/c.txt", "todo")
	writeFile(t, root, "image.png", "")

	source := NewDirSource(root, []string{"**/*.md"})
	docs, err := source.Documents(context.Background())
	require.NoError(t, err)

	paths := docPaths(docs)
	assert.ElementsMatch(t, []string{"a.md", "notes/b.md"}, paths)
}

func TestDirSource_NoPatternsIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "x")
	writeFile(t, root, "b.txt", "y")

	source := NewDirSource(root, nil)
	docs, err := source.Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDirSource_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "todo")
	writeFile(t, root, ".obsidian/workspace.md", "todo")
	writeFile(t, root, ".git/config.md", "todo")
	writeFile(t, root, "node_modules/pkg/readme.md", "todo")

	source := NewDirSource(root, []string{"**/*.md"})
	docs, err := source.Documents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md"}, docPaths(docs))
}

func TestDirSource_ReadsContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dir/a.md", "line one\nline two")

	source := NewDirSource(root, []string{"**/*.md"})
	docs, err := source.Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "dir/a.md", docs[0].Path)
	assert.Equal(t, "line one\nline two", docs[0].Text)
}

func TestIgnoredDir(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{".git", true},
		{".obsidian", true},
		{"node_modules", true},
		{".hidden", true},
		{"notes", false},
		{"daily", false},
		{".", false},
		{"..", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IgnoredDir(tc.name))
		})
	}
}

func TestFindVaultRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o755))
	nested := filepath.Join(root, "notes", "daily")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok := FindVaultRoot(nested)
	require.True(t, ok)
	assert.Equal(t, root, found)
}

func TestFindVaultRoot_NotAVault(t *testing.T) {
	dir := t.TempDir()
	_, ok := FindVaultRoot(dir)
	assert.False(t, ok)
}
