package utils

import "net/mail"

// IsValidEmail reports whether s is a bare address such as "scotty@cmu.edu".
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
