package tree

// ExpandState is the set of folder paths currently shown open. It is
// keyed by full folder paths rather than node references, so it stays
// valid across tree rebuilds as long as the paths are unchanged. The
// state lives for the TUI session and is passed explicitly into
// rendering.
type ExpandState map[string]struct{}

// NewExpandState returns an empty state: every folder starts collapsed.
func NewExpandState() ExpandState {
	return make(ExpandState)
}

// Has reports whether the folder at path is expanded. Lookup is by
// exact path string; two folders sharing a name in different locations
// are tracked independently.
func (s ExpandState) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Add marks the folder at path as expanded.
func (s ExpandState) Add(path string) {
	s[path] = struct{}{}
}

// Remove marks the folder at path as collapsed.
func (s ExpandState) Remove(path string) {
	delete(s, path)
}

// Toggle flips the expansion of the folder at path and reports the new
// state.
func (s ExpandState) Toggle(path string) bool {
	if s.Has(path) {
		s.Remove(path)
		return false
	}
	s.Add(path)
	return true
}

// ExpandAll marks every given folder path as expanded.
func (s ExpandState) ExpandAll(paths []string) {
	for _, path := range paths {
		s.Add(path)
	}
}

// CollapseAll clears the state entirely.
func (s ExpandState) CollapseAll() {
	for path := range s {
		delete(s, path)
	}
}
