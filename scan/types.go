package scan

// Match is a single marker hit: one line in one document.
type Match struct {
	Text   string // trimmed line content
	Line   int    // 0-based line number
	Col    int    // 0-based byte offset of the marker hit in the raw line
	Marker string // the marker string that matched, as configured
}

// Document is one member of the corpus, identified by its
// slash-separated path relative to the vault root.
type Document struct {
	Path string
	Text string
}

// Result maps document paths to their matches in ascending line order.
// A path is present only if it has at least one match.
type Result map[string][]Match

// FileCount returns the number of documents with at least one match.
func (r Result) FileCount() int {
	return len(r)
}

// TotalMatches returns the number of matches across all documents.
func (r Result) TotalMatches() int {
	total := 0
	for _, matches := range r {
		total += len(matches)
	}
	return total
}
