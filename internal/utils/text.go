// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

// Truncate returns the first max runes of s, unchanged when s is shorter.
//
// Example:
//
//	utils.Truncate("hello world", 5) // "hello"
//	utils.Truncate("hi", 10)         // "hi"
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Abbreviate shortens s to at most max runes, replacing the tail with "..."
// when truncation occurs. Used to produce compact history summaries for
// display.
func Abbreviate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
