// Package filter holds the set of habit ids the calendar is narrowed to.
package filter

import "sort"

// Selection is a set of habit ids. The zero value is an empty selection,
// which means "show all habits".
type Selection struct {
	ids map[string]struct{}
}

// Toggle adds id if absent and removes it otherwise. It reports whether id
// is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order. The slice is a copy.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Retain drops selected ids that are not in known, e.g. after a habit was
// deleted.
func (s *Selection) Retain(known func(id string) bool) {
	for id := range s.ids {
		if !known(id) {
			delete(s.ids, id)
		}
	}
}
