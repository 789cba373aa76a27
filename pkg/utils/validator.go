package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// SanitizePathComponent returns a filesystem-safe version of one path
// component, for use in zip entry names and attachment file names.
// Removes path separators and parent references to prevent traversal.
func SanitizePathComponent(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	name = unsafePathChars.ReplaceAllString(name, "")
	return name
}
