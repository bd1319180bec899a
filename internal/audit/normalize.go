package audit

import "strings"

const normalizedWordSeparatorConstant = " "

// NormalizeLine canonicalizes a raw line into the key used for duplicate and
// contradiction comparison: surrounding whitespace is trimmed, internal
// whitespace runs collapse to a single space, and the result is lowercased.
// Whitespace-only input yields the empty string.
func NormalizeLine(rawLine string) string {
	collapsed := strings.Join(strings.Fields(rawLine), normalizedWordSeparatorConstant)
	return strings.ToLower(collapsed)
}
