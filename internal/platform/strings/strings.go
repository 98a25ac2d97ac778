// Package strings holds small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s, panicking with name when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to one leading slash and no trailing slash
// the bare root panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
