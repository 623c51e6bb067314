package domain

import (
	"sort"
	"strings"
)

// builtinTaskNames seed the suggestion set so autocomplete is useful
// before any history exists.
var builtinTaskNames = []string{
	"Admin",
	"Email",
	"Meeting",
	"Planning",
	"Research",
}

// SuggestionSet holds the task names offered for input autocomplete.
// It is the union of a fixed built-in list and the distinct task names
// seen in the store, deduplicated and case-sensitive. The set is owned
// by the entry form and never persisted.
type SuggestionSet struct {
	names map[string]struct{}
}

// NewSuggestionSet creates a SuggestionSet seeded with the built-in
// names plus the given historical task names.
func NewSuggestionSet(history []string) *SuggestionSet {
	s := &SuggestionSet{names: make(map[string]struct{})}
	for _, name := range builtinTaskNames {
		s.Add(name)
	}
	for _, name := range history {
		s.Add(name)
	}
	return s
}

// Add merges a task name into the set. Empty names are ignored.
func (s *SuggestionSet) Add(name string) {
	if name == "" {
		return
	}
	s.names[name] = struct{}{}
}

// Contains reports whether the exact name is in the set.
func (s *SuggestionSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns all suggestions sorted ascending.
func (s *SuggestionSet) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Matching returns the suggestions that start with the given prefix,
// sorted ascending. An empty prefix returns every suggestion.
func (s *SuggestionSet) Matching(prefix string) []string {
	if prefix == "" {
		return s.Names()
	}
	var matches []string
	for _, name := range s.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}
