package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxCodeLength bounds subject codes read from catalogs and progress files.
const maxCodeLength = 64

// ValidateSubjectCode validates a subject code for safety and correctness.
//
// Codes are short identifiers such as "GAL1" or "CDIVV". The rules are:
//   - No empty codes
//   - No whitespace or control characters
//   - Maximum length of 64 characters
func ValidateSubjectCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidCode, "subject code cannot be empty")
	}

	if len(code) > maxCodeLength {
		return New(ErrCodeInvalidCode, "subject code too long (max %d characters)", maxCodeLength)
	}

	for _, r := range code {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCode, "subject code contains invalid characters: %q", code)
		}
	}

	return nil
}

// catalogExtensions lists the file extensions accepted for catalogs.
var catalogExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateCatalogPath validates that path names a catalog file format we can decode.
func ValidateCatalogPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "catalog path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "catalog path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !catalogExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported catalog format %q (want .json, .yaml or .yml)", ext)
	}

	return nil
}
