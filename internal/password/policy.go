// Package password implements credential policy and hashing for the
// identity service: the complexity rules applied at signup and password
// reset, and Argon2id hashing with rehash-on-demand support.
package password

import "strings"

// symbolSet is the fixed set of special characters accepted by the
// complexity check.
const symbolSet = "!=;:?>@<#$%&'()*+,-./[\\]^_`{|}~"

// minLength is the minimum accepted password length, in bytes as stored.
const minLength = 13

// CheckComplexity reports whether a candidate password meets the minimum
// complexity requirements: at least 13 characters, at least one uppercase
// letter, one lowercase letter, one digit and one symbol from symbolSet,
// and no overlap with the email address (see CheckNoEmailWindow).
//
// Input is evaluated byte for byte exactly as provided, with no Unicode
// normalization. Accept/reject only; there is no scoring.
func CheckComplexity(email, password string) bool {
	if len(password) < minLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.IndexByte(symbolSet, c) >= 0:
			symbol = true
		}
	}

	return upper && lower && digit && symbol && CheckNoEmailWindow(email, password)
}

// CheckNoEmailWindow reports whether the password is free of any
// 3-character window of the email address. Every start index i in
// [0, len(email)-1) contributes the slice email[i:i+3]; the slice at the
// very end is only 2 characters long. Matching is case-insensitive.
//
// The short tail window means a password containing the last 2 characters
// of the email is rejected too. The existing account base was validated
// with exactly this scan, so it is preserved as is rather than generalized
// to a full substring-containment check.
func CheckNoEmailWindow(email, password string) bool {
	lowered := strings.ToLower(password)

	for i := 0; i+1 < len(email); i++ {
		end := i + 3
		if end > len(email) {
			end = len(email)
		}
		if strings.Contains(lowered, strings.ToLower(email[i:end])) {
			return false
		}
	}

	return true
}
