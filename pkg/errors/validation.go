package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a display name (project or furniture item) for
// safety and correctness. Names end up in file names, cache keys, and task
// titles, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// identityRegex matches identities accepted from external input: UUIDs and
// other URL-safe opaque identifiers.
var identityRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateIdentity validates an externally supplied identity string.
// Identities are used in store keys and file paths, so path separators,
// traversal sequences, and control characters are rejected.
func ValidateIdentity(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identity cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identity too long (max 128 characters)")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "identity cannot contain path traversal sequences (..)")
	}

	if !identityRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid identity: %q", id)
	}

	return nil
}

// ValidateProductCode validates an external product code. Codes are
// optional; the empty string is accepted.
func ValidateProductCode(code string) error {
	if code == "" {
		return nil
	}

	if len(code) > 64 {
		return New(ErrCodeInvalidTemplate, "product code too long (max 64 characters)")
	}

	for _, r := range code {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "product code contains invalid control characters")
		}
	}

	return nil
}

// ValidateImageRef validates a background-image reference. The engine never
// decodes image content; it only checks the reference is a plausible opaque
// handle (http(s) URL, blob handle, or relative file path).
func ValidateImageRef(ref string) error {
	if ref == "" {
		return nil
	}

	if len(ref) > 2048 {
		return New(ErrCodeInvalidInput, "image reference too long (max 2048 characters)")
	}

	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "image reference contains invalid characters")
		}
	}

	return nil
}
