package errors

import (
	"strings"
	"unicode"
)

// ValidateProjectName validates a saved-project name for safety. Names
// become file names in the file store and document keys in Mongo, so
// the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProjectName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProject, "project name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidProject, "project name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "project name contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidProject, "project name contains invalid sequence %q", pattern)
		}
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidProject, "project name cannot start with a dot")
	}
	return nil
}

// ExportFormats lists the artifact formats the exporter understands.
var ExportFormats = map[string]bool{
	"png": true,
	"stl": true,
	"glb": true,
}

// ValidateFormat checks an export-format tag.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !ExportFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'stl', or 'glb')", format)
	}
	return nil
}
