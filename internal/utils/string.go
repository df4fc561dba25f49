package utils

import "strings"

// Truncate limits s to at most max runes. The bound is a hard contract for
// prompt building, not a display heuristic.
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

// NormalizeFolderName maps any casing of "inbox" to the canonical uppercase
// INBOX name required by the protocol's root folder convention.
func NormalizeFolderName(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), "inbox") {
		return "INBOX"
	}
	return name
}
