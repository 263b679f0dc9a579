package utils

import (
	"sort"
	"strings"
)

// SetSeparator joins the members of a set stored as delimited text.
const SetSeparator = ", "

// SplitSet parses delimited text into trimmed, non-empty members.
// Duplicates are dropped, first occurrence wins.
func SplitSet(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// JoinSet serializes members as delimited text, skipping blanks and duplicates.
func JoinSet(members []string) string {
	return strings.Join(SplitSet(strings.Join(members, ",")), SetSeparator)
}

// UnionSorted returns the distinct members of several delimited texts, sorted.
func UnionSorted(values []string) []string {
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, m := range SplitSet(v) {
			seen[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
