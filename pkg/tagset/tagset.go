// Package tagset models an order's labels as an ordered set of strings.
//
// Storefronts expose labels as one comma-joined string. Parse and String are
// the only places that representation is touched.
package tagset

import "strings"

const separator = ","

// Set keeps insertion order and compares members case-insensitively.
type Set struct {
	items []string
	index map[string]int
}

func New(tags ...string) Set {
	s := Set{index: make(map[string]int, len(tags))}
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

// Parse reads a comma-joined label string, dropping blanks and duplicates.
func Parse(raw string) Set {
	return New(strings.Split(raw, separator)...)
}

func key(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Add appends tag unless an equal tag is already present. Blank tags are ignored.
func (s *Set) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	k := key(tag)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, tag)
	return true
}

// Remove deletes every given tag, returning how many were present.
func (s *Set) Remove(tags ...string) int {
	removed := 0
	for _, tag := range tags {
		if _, ok := s.index[key(tag)]; ok {
			delete(s.index, key(tag))
			removed++
		}
	}
	if removed == 0 {
		return 0
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := s.index[key(item)]; ok {
			kept = append(kept, item)
		}
	}
	s.items = kept
	for i, item := range s.items {
		s.index[key(item)] = i
	}
	return removed
}

func (s Set) Has(tag string) bool {
	_, ok := s.index[key(tag)]
	return ok
}

func (s Set) Len() int {
	return len(s.items)
}

func (s Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Equal reports whether both sets hold the same members in the same order.
func (s Set) Equal(other Set) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if key(s.items[i]) != key(other.items[i]) {
			return false
		}
	}
	return true
}

func (s Set) Clone() Set {
	return New(s.items...)
}

// String serializes back to the storefront representation.
func (s Set) String() string {
	return strings.Join(s.items, separator)
}
