package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateTaskID validates a task identifier as written in a task file.
// Identifiers must be non-empty, contain no control characters and stay
// under 256 characters so they can be used as SVG element ids.
func ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeEmptyID, "task id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "task id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "task id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePath validates a task or output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Extension (when allowed is non-empty) must be one of allowed
func ValidatePath(path string, allowed ...string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if len(allowed) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported file extension %q (want one of %s)", ext, strings.Join(allowed, ", "))
}

// ValidateCacheURL validates a remote cache URL.
// Only redis:// and rediss:// schemes are accepted.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "cache URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "cache URL must use redis or rediss scheme")
	}

	return nil
}
