package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMarkers() []string {
	return []string{"todo", "fixme", "should remember to"}
}

func TestScanDocuments(t *testing.T) {
	docs := []Document{
		{Path: "a.md", Text: "TODO: fix\nnothing\nFIXME later"},
	}

	res := ScanDocuments(docs, defaultMarkers())

	require.Len(t, res, 1)
	matches := res["a.md"]
	require.Len(t, matches, 2)

	assert.Equal(t, "TODO: fix", matches[0].Text)
	assert.Equal(t, 0, matches[0].Line)
	assert.Equal(t, "FIXME later", matches[1].Text)
	assert.Equal(t, 2, matches[1].Line)
}

func TestScanDocuments_OmitsCleanDocuments(t *testing.T) {
	docs := []Document{
		{Path: "dir/b.md", Text: "no markers here"},
		{Path: "c.md", Text: "todo: keep this"},
	}

	res := ScanDocuments(docs, defaultMarkers())

	require.Len(t, res, 1)
	assert.NotContains(t, res, "dir/b.md")
	assert.Contains(t, res, "c.md")

	// Every present path has a non-empty match list.
	for path, matches := range res {
		assert.NotEmpty(t, matches, "path %s", path)
	}
}

func TestScanDocuments_EmptyMarkers(t *testing.T) {
	docs := []Document{{Path: "a.md", Text: "TODO: fix"}}
	res := ScanDocuments(docs, nil)
	assert.Empty(t, res)
}

func TestScanDocuments_TrimsMatchText(t *testing.T) {
	docs := []Document{{Path: "a.md", Text: "   todo: indented\t"}}

	res := ScanDocuments(docs, defaultMarkers())

	require.Len(t, res["a.md"], 1)
	match := res["a.md"][0]
	assert.Equal(t, "todo: indented", match.Text)
	// Col points into the raw, untrimmed line.
	assert.Equal(t, 3, match.Col)
	assert.Equal(t, "todo", match.Marker)
}

func TestScanDocuments_MatchesAscendingLineOrder(t *testing.T) {
	docs := []Document{
		{Path: "a.md", Text: "todo one\nplain\ntodo two\ntodo three"},
	}

	res := ScanDocuments(docs, defaultMarkers())

	matches := res["a.md"]
	require.Len(t, matches, 3)
	for i := 1; i < len(matches); i++ {
		assert.Greater(t, matches[i].Line, matches[i-1].Line)
	}
}

func TestResultCounts(t *testing.T) {
	res := Result{
		"a.md":   {{Text: "todo", Line: 0}},
		"b/c.md": {{Text: "todo", Line: 1}, {Text: "fixme", Line: 5}},
	}

	assert.Equal(t, 2, res.FileCount())
	assert.Equal(t, 3, res.TotalMatches())
}
