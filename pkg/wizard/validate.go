package wizard

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

	// whitespace matches what browsers treat as \s: ASCII and Unicode spaces,
	// line and paragraph separators and the byte order mark.
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// NormalizePhone strips every whitespace run from raw.
func NormalizePhone(raw string) string {
	return whitespace.ReplaceAllString(raw, "")
}

// ValidPhone reports whether raw is an optional leading "+" followed by 7 to
// 15 digits once whitespace is removed.
func ValidPhone(raw string) bool {
	return phonePattern.MatchString(NormalizePhone(raw))
}

// ValidEmail reports whether raw, trimmed, has a local@domain.tld shape with
// no whitespace of any script inside.
func ValidEmail(raw string) bool {
	return emailPattern.MatchString(strings.TrimFunc(raw, isSpace))
}


func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
