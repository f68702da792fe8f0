package utils // utils holds small pure helpers shared across handlers and services

import "regexp"

// emailPattern accepts a word/dot/dash local part, an "@", and a
// domain that contains at least one dot.  Whitespace anywhere fails
// the match because the pattern is anchored at both ends.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// ValidEmail reports whether s is a syntactically acceptable email
// address.  It checks shape only; no DNS or mailbox verification.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
