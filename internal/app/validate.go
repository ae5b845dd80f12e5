package app

import "strings"

const passwordSpecials = "@$!%*?&"

// isValidEmail requires exactly one @ separating a non-empty local part from
// a domain that contains an interior dot, with no whitespace anywhere.
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// isValidPassword enforces the composition rule: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit, and a special character,
// drawn only from that alphabet.
func isValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return upper && lower && digit && special
}
