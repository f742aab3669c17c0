package errors

import (
	"strings"
	"unicode"
)

// ValidateDimensions checks that a grid has a positive number of rows and columns.
func ValidateDimensions(height, width int) error {
	if height <= 0 {
		return New(ErrCodeInvalidDimensions, "height must be positive, got %d", height)
	}
	if width <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %d", width)
	}
	return nil
}

// ValidatePalette checks that every tile size is positive and appears once.
// An empty palette is valid: the fallback pass covers the whole grid.
// The order is not inspected; callers decide it.
func ValidatePalette(palette []int) error {
	seen := make(map[int]bool, len(palette))
	for i, s := range palette {
		if s <= 0 {
			return New(ErrCodeInvalidPalette, "palette entry %d must be positive, got %d", i, s)
		}
		if seen[s] {
			return New(ErrCodeInvalidPalette, "palette contains duplicate size %d", s)
		}
		seen[s] = true
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
