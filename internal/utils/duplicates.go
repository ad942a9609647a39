package utils

import (
	"strings"
)

// SuggestionFilter drops case-insensitive duplicates while a suggestion list
// is being assembled.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter returns a filter that already considers exclude as seen.
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	f := &SuggestionFilter{seen: make(map[string]struct{}, 16)}
	for _, w := range exclude {
		f.seen[strings.ToLower(w)] = struct{}{}
	}
	return f
}

// ShouldInclude returns true the first time a word is offered.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	key := strings.ToLower(word)
	if _, dup := f.seen[key]; dup {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
