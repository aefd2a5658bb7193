package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether address looks like a deliverable email.
func ValidateEmail(address string) bool {
	return emailPattern.MatchString(address)
}

const minPasswordLength = 8

// ValidatePassword checks an account password against the portal rule.
// The returned message goes straight into the error envelope.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}
