package utils

// ClueSet tracks the normalized clue keys already recorded for one word.
// It is not safe for concurrent use.
type ClueSet struct {
	seen map[string]struct{}
}

// NewClueSet creates an empty set
func NewClueSet() *ClueSet {
	return &ClueSet{seen: make(map[string]struct{})}
}

// ShouldInclude marks key as seen and reports whether it was new.
// Returns false for keys that were already recorded.
func (s *ClueSet) ShouldInclude(key string) bool {
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys seen so far
func (s *ClueSet) Len() int {
	return len(s.seen)
}
