package scrabtopus

import "strings"

// NormalizeText collapses every run of whitespace to a single space and
// trims the ends. It is idempotent.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinText joins text fragments with a single space and normalizes the result.
func JoinText(parts []string) string {
	return NormalizeText(strings.Join(parts, " "))
}
