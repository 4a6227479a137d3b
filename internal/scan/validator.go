// Package scan normalises and validates raw scanner input before it is used as a lookup key.
package scan

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrorKind classifies a rejected scan.
type ErrorKind int

const (
	TooShort ErrorKind = iota + 1
	TooLong
	InvalidCharacters
)

func (k ErrorKind) String() string {
	switch k {
	case TooShort:
		return "too_short"
	case TooLong:
		return "too_long"
	case InvalidCharacters:
		return "invalid_characters"
	default:
		return "unknown"
	}
}

// ValidationError describes why a scan was rejected.
type ValidationError struct {
	Kind  ErrorKind
	Limit int // the violated length bound, zero for InvalidCharacters
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case TooShort:
		return fmt.Sprintf("Scan too short (minimum %d characters)", e.Limit)
	case TooLong:
		return fmt.Sprintf("Scan too long (maximum %d characters)", e.Limit)
	default:
		return "Contains invalid characters"
	}
}

// Clean strips surrounding whitespace and the CR/LF characters scanners append to a read.
func Clean(raw string) string {
	cleaned := strings.TrimSpace(raw)
	return strings.NewReplacer("\r", "", "\n", "").Replace(cleaned)
}

// Validate returns the cleaned scan code or a *ValidationError.
// Lengths are counted in characters. No checksum validation is done here,
// the lookup service is the authority on whether a code exists.
func Validate(raw string, minLen, maxLen int) (string, error) {
	cleaned := Clean(raw)
	n := utf8.RuneCountInString(cleaned)
	if n < minLen {
		return "", &ValidationError{Kind: TooShort, Limit: minLen}
	}
	if n > maxLen {
		return "", &ValidationError{Kind: TooLong, Limit: maxLen}
	}
	if !printable(cleaned) {
		return "", &ValidationError{Kind: InvalidCharacters}
	}
	return cleaned, nil
}

func printable(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
