package preview

// Preview is an excerpt of a document around a match, used to show the
// match in context before navigating to it.
type Preview struct {
	Path      string   // vault-relative document path
	StartLine int      // 0-based line number of Lines[0] in the document
	Lines     []string // raw context lines
	HitIndex  int      // index into Lines of the matched line
}
