// Package textutil holds small string helpers for emails, identifiers,
// URIs and password strength.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)
	parenthetical   = regexp.MustCompile(`\s*\(.+?\)`)
	dashLetter      = regexp.MustCompile(`-([A-Za-z])`)
	emailPattern    = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

	hasDigit   = regexp.MustCompile(`\d`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasNonWord = regexp.MustCompile(`\W`)
)

// DefaultStrengthCodes are the labels PasswordStrength returns from weakest to strongest.
var DefaultStrengthCodes = [4]string{"veryweak", "weak", "good", "strong"}

// EscapeEmail replaces every character outside [A-Za-z0-9] with an underscore,
// making the address usable as a storage key.
func EscapeEmail(email string) string {
	return nonAlphanumeric.ReplaceAllString(email, "_")
}

// ValidateEmail reports whether email looks like a deliverable address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

// UcFirst upper-cases the first letter of s.
func UcFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Camelize turns dashed names into camel case: "data-foo-bar" becomes "dataFooBar".
func Camelize(s string) string {
	return dashLetter.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// EncodeURI drops parenthetical groups such as " (draft)" and percent-encodes
// the rest the way encodeURIComponent does.
func EncodeURI(s string) string {
	s = parenthetical.ReplaceAllString(s, "")

	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// ScorePassword rates pass: every character earns 5/n points on its n-th
// occurrence, and each character class beyond the first adds 10.
func ScorePassword(pass string) int {
	if pass == "" {
		return 0
	}

	score := 0.0
	seen := make(map[rune]int)
	for _, r := range pass {
		seen[r]++
		score += 5.0 / float64(seen[r])
	}

	variations := 0
	for _, re := range []*regexp.Regexp{hasDigit, hasLower, hasUpper, hasNonWord} {
		if re.MatchString(pass) {
			variations++
		}
	}
	score += float64((variations - 1) * 10)

	return int(score)
}

// PasswordStrength maps the score of pass onto codes (very weak, weak, good,
// strong). An empty string means the password is too weak to rate.
// DefaultStrengthCodes are used unless exactly four codes are given.
func PasswordStrength(pass string, codes ...string) string {
	labels := DefaultStrengthCodes[:]
	if len(codes) == len(DefaultStrengthCodes) {
		labels = codes
	}

	score := ScorePassword(pass)
	switch {
	case score > 80:
		return labels[3]
	case score > 60:
		return labels[2]
	case score >= 30:
		return labels[1]
	case score >= 5:
		return labels[0]
	}
	return ""
}
