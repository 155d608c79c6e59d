// Package textnorm holds the text normalization shared by every filter rule.
package textnorm

import "strings"

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll normalizes each entry and drops the ones that end up empty.
func NormalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// ContainsAny reports whether text contains any of the given substrings
// after each substring is normalized. Blank substrings never match.
func ContainsAny(text string, subs []string) bool {
	for _, s := range subs {
		if s = Normalize(s); s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}
