package models

import "sort"

// Selection is a client-type or meeting-type filter: either the "all"
// wildcard or a non-empty set of concrete tags. The zero value is the
// wildcard, so an absent query parameter needs no special casing.
type Selection struct {
	tags map[string]struct{}
}

// SelectAll returns the unrestricted selection.
func SelectAll() Selection {
	return Selection{}
}

// SelectTags builds a Selection from concrete tags. An empty list, or any
// occurrence of the "all" sentinel, collapses to the wildcard.
func SelectTags(tags ...string) Selection {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if t == ClientTypeAll {
			return Selection{}
		}
		set[t] = struct{}{}
	}
	if len(set) == 0 {
		return Selection{}
	}
	return Selection{tags: set}
}

func (s Selection) IsAll() bool {
	return len(s.tags) == 0
}

func (s Selection) Contains(tag string) bool {
	if s.IsAll() {
		return true
	}
	_, ok := s.tags[tag]
	return ok
}

// Tags returns the concrete tags in sorted order; nil for the wildcard.
func (s Selection) Tags() []string {
	if s.IsAll() {
		return nil
	}
	out := make([]string, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
