package domain

import (
	"crypto/rand"
	"strings"
)

// codeAlphabet omits 0/O/1/I so codes survive being read aloud or retyped.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeLength    = 12
	codeGroupSize = 4
)

// NewActivationCode returns a random code in XXXX-XXXX-XXXX form.
func NewActivationCode() string {
	raw := make([]byte, codeLength)
	if _, err := rand.Read(raw); err != nil {
		panic("domain: crypto/rand unavailable: " + err.Error())
	}
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && i%codeGroupSize == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
	}
	return b.String()
}

// NormalizeCode upper-cases and strips all whitespace. Dashes are kept; the
// XXXX-XXXX-XXXX grouping is cosmetic and not validated strictly.
func NormalizeCode(code string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(code))
	return strings.Join(strings.Fields(cleaned), "")
}

// NormalizeEmail trims and lower-cases for case-insensitive matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
