package validation

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDots    = regexp.MustCompile(`\.{2,}`)
)

// Sanitize reduces a filename to its canonical form: only [A-Za-z0-9._-],
// no repeated dots, no leading dots, at most maxLength bytes. The result is
// a fixed point, sanitizing twice changes nothing.
func Sanitize(name string, maxLength int) string {
	s := disallowedChars.ReplaceAllString(name, "")
	s = repeatedDots.ReplaceAllString(s, ".")
	s = strings.TrimLeft(s, ".")
	if maxLength > 0 && len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}
