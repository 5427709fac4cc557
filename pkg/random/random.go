package random

import "math/rand"

const (
	idAlphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// PasswordLength is the length of passwords produced by Password
	PasswordLength = 8
)

// MakeID returns a random alphanumeric identifier of length n.
// Not suitable for secrets.
func MakeID(n int) string {
	return fromAlphabet(idAlphabet, n)
}

// Password returns a random 8 character password of lowercase letters and digits
func Password() string {
	return fromAlphabet(passwordAlphabet, PasswordLength)
}

func fromAlphabet(alphabet string, n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
