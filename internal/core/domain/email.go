package domain

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is kept as typed since mail servers may treat it case-sensitively.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
