package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates an engine identifier (table, seat, guest, or plan id)
// for safety and correctness. It rejects values that could be used for path
// traversal when ids end up in file or cache key names.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeConfigInvalid, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeConfigInvalid, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeConfigInvalid, "id contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeConfigInvalid, "id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// planNameRegex matches valid saved-plan names.
var planNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidatePlanName validates the name under which a plan is saved or loaded.
// Plan names become file names and store keys, so they must be simple
// basenames with no path components.
func ValidatePlanName(name string) error {
	if name == "" {
		return New(ErrCodeConfigInvalid, "plan name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeConfigInvalid, "plan name too long (max 128 characters)")
	}

	if !planNameRegex.MatchString(name) {
		return New(ErrCodeConfigInvalid, "invalid plan name: %q", name)
	}

	return nil
}

// ValidateTableName validates a human-facing table name.
// Names are display strings, so only control characters and absurd lengths
// are rejected.
func ValidateTableName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeConfigInvalid, "table name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeConfigInvalid, "table name contains control characters")
		}
	}
	return nil
}
