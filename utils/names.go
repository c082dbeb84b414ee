package utils

import "strings"

// NormalizeName prepares a display name for duplicate comparison: surrounding
// whitespace is trimmed and the result is lowercased. Internal whitespace is
// left as typed, so "North  Tower" and "North Tower" remain distinct.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
