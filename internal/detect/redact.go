package detect

import "strings"

// Redact masks matched secret text. Up to four runes are fully masked; longer
// matches keep their first four runes. The result has the same rune length.
func Redact(m string) string {
	r := []rune(m)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-4)
}
