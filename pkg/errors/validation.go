package errors

import (
	"strings"
	"unicode"
)

// ValidateFilePath validates a dataset or output file path supplied by a user
// or a request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) when relative is set
func ValidateFilePath(path string, relative bool) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if relative {
		if strings.HasPrefix(path, "/") {
			return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
		}
		if strings.Contains(path, "..") {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateLocationCode validates the short code identifying a location in a
// dataset. Codes are matched verbatim, so surrounding whitespace and
// separators used by the dataset formats are rejected.
func ValidateLocationCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidDataset, "location code cannot be empty")
	}
	if len(code) > 64 {
		return New(ErrCodeInvalidDataset, "location code too long (max 64 characters): %q", code)
	}
	if strings.TrimSpace(code) != code {
		return New(ErrCodeInvalidDataset, "location code has surrounding whitespace: %q", code)
	}
	for _, r := range code {
		if unicode.IsControl(r) || r == ',' {
			return New(ErrCodeInvalidDataset, "location code contains invalid characters: %q", code)
		}
	}
	return nil
}

// ValidateMaxWalkTime validates a walking budget. Zero is a valid budget that
// only admits parking reachable at no walking cost.
func ValidateMaxWalkTime(minutes int64) error {
	if minutes < 0 {
		return New(ErrCodeInvalidInput, "maximum walking time cannot be negative: %d", minutes)
	}
	return nil
}
