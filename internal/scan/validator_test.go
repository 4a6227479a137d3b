package scan

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Kind
}

func TestClean(t *testing.T) {
	assert.Equal(t, "12345678900014", Clean("  12345678900014\r\n"))
	assert.Equal(t, "123456", Clean("123\r\n456"))
	assert.Equal(t, "", Clean(" \t\r\n"))
}

func TestValidate_LengthBoundaries(t *testing.T) {
	const minLen, maxLen = 6, 14

	for n := 0; n < minLen; n++ {
		_, err := Validate(strings.Repeat("1", n), minLen, maxLen)
		assert.Equal(t, TooShort, kindOf(t, err), "length %d", n)
	}

	code, err := Validate(strings.Repeat("1", minLen), minLen, maxLen)
	require.NoError(t, err)
	assert.Len(t, code, minLen)

	code, err = Validate(strings.Repeat("1", maxLen), minLen, maxLen)
	require.NoError(t, err)
	assert.Len(t, code, maxLen)

	for n := maxLen + 1; n < maxLen+5; n++ {
		_, err := Validate(strings.Repeat("1", n), minLen, maxLen)
		assert.Equal(t, TooLong, kindOf(t, err), "length %d", n)
	}
}

func TestValidate_LengthIsMeasuredAfterCleaning(t *testing.T) {
	code, err := Validate("  12345678900014\r\n", 6, 14)
	require.NoError(t, err)
	assert.Equal(t, "12345678900014", code)

	_, err = Validate("   123   \r\n", 6, 14)
	assert.Equal(t, TooShort, kindOf(t, err))
}

func TestValidate_InvalidCharacters(t *testing.T) {
	cases := []string{
		"1234\x005678",
		"1234\t5678",
		"1234\x1b5678",
		"1234\u200b5678",
	}
	for _, raw := range cases {
		_, err := Validate(raw, 6, 14)
		assert.Equal(t, InvalidCharacters, kindOf(t, err), "%q", raw)
	}
}

func TestValidate_KeepsCase(t *testing.T) {
	code, err := Validate("AbC-123-xyz", 6, 14)
	require.NoError(t, err)
	assert.Equal(t, "AbC-123-xyz", code)
}

func TestValidationError_Messages(t *testing.T) {
	_, err := Validate("123", 6, 14)
	assert.EqualError(t, err, "Scan too short (minimum 6 characters)")

	_, err = Validate("123456789012345", 6, 14)
	assert.EqualError(t, err, "Scan too long (maximum 14 characters)")
}
