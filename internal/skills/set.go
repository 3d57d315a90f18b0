package skills

import "sort"

// Set is a set of normalized lowercase skill names.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set) Add(item string) {
	s[item] = struct{}{}
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Union returns a new set with the members of s and every other set.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s))
	for item := range s {
		out.Add(item)
	}
	for _, other := range others {
		for item := range other {
			out.Add(item)
		}
	}
	return out
}

// Sorted returns the members in ascending order. The result is never nil so
// it encodes as an empty JSON array.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
