package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLabelLength bounds node and cluster labels. Graphviz accepts longer
// strings but they make unreadable pictures.
const maxLabelLength = 128

// ValidateLabel checks a node or cluster label.
//
// Labels may contain newlines (rendered as line breaks) but no other control
// characters, and must not be blank.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidTopology, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidTopology, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidTopology, "label %q contains invalid control characters", label)
		}
	}

	return nil
}

// filenameRegex matches output base names: letters, digits, dash, underscore, dot.
var filenameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFilename validates an output base name such as "architecture".
// It must be a simple basename without extension-only or path components.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "filename cannot contain path traversal sequences (..)")
	}

	if !filenameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid filename: %q", name)
	}

	return nil
}
