package scan

import (
	"unicode"
	"unicode/utf8"
)

// MatchesLine reports whether the line contains at least one of the
// markers, case-insensitively. An empty marker list never matches.
// Matching is plain substring containment with no word-boundary check,
// so "todo" also matches inside "todoist".
func MatchesLine(line string, markers []string) bool {
	_, _, ok := FindMarker(line, markers)
	return ok
}

// FindMarker returns the leftmost marker hit in the line: the marker as
// configured and the byte offset of its occurrence in the line itself.
// When several markers match, the one occurring earliest in the line
// wins; ties go to the marker listed first.
func FindMarker(line string, markers []string) (marker string, col int, ok bool) {
	col = -1
	for _, m := range markers {
		start, _ := IndexFold(line, m)
		if start < 0 {
			continue
		}
		if col < 0 || start < col {
			marker = m
			col = start
			ok = true
		}
	}
	if !ok {
		return "", 0, false
	}
	return marker, col, true
}

// IndexFold returns the byte offsets [start, end) in s of the first
// case-insensitive occurrence of substr. Offsets index s directly, so
// they stay valid for runes whose lowercase form has a different byte
// length (Ⱥ vs ⱥ). Returns (-1, -1) when substr is empty or absent.
func IndexFold(s, substr string) (start, end int) {
	if substr == "" {
		return -1, -1
	}
	for i := range s {
		if n, ok := foldPrefixLen(s[i:], substr); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// foldPrefixLen reports how many bytes at the start of s case-fold to
// prefix.
func foldPrefixLen(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if unicode.ToLower(r) != unicode.ToLower(pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}
