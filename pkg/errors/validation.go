package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates an output or input file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormats checks every requested format against the supported set.
// An empty request is rejected so callers never render nothing silently.
func ValidateFormats(formats, supported []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format requested")
	}
	for _, f := range formats {
		if !slices.Contains(supported, f) {
			return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", f, strings.Join(supported, ", "))
		}
	}
	return nil
}
