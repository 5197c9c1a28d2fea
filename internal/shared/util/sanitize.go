package util

import (
	"errors"
	"regexp"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

var (
	unsafeNamePattern = regexp.MustCompile(`[^\pL\pN\s\-._]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FileBaseName turns free-form user text (typically a person's name) into a
// string safe to embed in a generated file name. Unsafe characters are
// dropped, whitespace collapses to underscores, and an empty result falls
// back to "Document".
func FileBaseName(name string) string {
	s := unsafeNamePattern.ReplaceAllString(name, "")
	s = whitespacePattern.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "Document"
	}
	return s
}
