package scan

import (
	"context"
	"strings"
)

// Scanner runs full passes over a document source, collecting marker
// matches per document. Every call to Scan re-reads the whole corpus;
// there is no caching or incremental merging. Vaults are assumed small
// enough that a full rescan is cheap next to the refresh debounce.
type Scanner struct {
	source  Source
	markers []string
}

// NewScanner creates a Scanner over the given source and marker set.
func NewScanner(source Source, markers []string) *Scanner {
	return &Scanner{source: source, markers: markers}
}

// Scan reads every document from the source and returns the matches
// grouped by document path. Documents without matches are omitted.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	docs, err := s.source.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return ScanDocuments(docs, s.markers), nil
}

// ScanDocuments applies the marker set to each document, line by line.
// Lines are split on \n and 0-indexed; matching lines are recorded with
// their trimmed text. The result contains only documents that matched.
func ScanDocuments(docs []Document, markers []string) Result {
	result := make(Result)
	for _, doc := range docs {
		matches := scanText(doc.Text, markers)
		if len(matches) > 0 {
			result[doc.Path] = matches
		}
	}
	return result
}

func scanText(text string, markers []string) []Match {
	var matches []Match
	for i, line := range strings.Split(text, "\n") {
		marker, col, ok := FindMarker(line, markers)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Text:   strings.TrimSpace(line),
			Line:   i,
			Col:    col,
			Marker: marker,
		})
	}
	return matches
}
