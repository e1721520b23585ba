package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTag extracts the major, minor, and patch components from a version
// tag. The tag is expected to have its prefix already stripped.
//
// The tag is split on "." and the first three fields are consumed; extra
// fields are ignored. Within each field only the leading run of ASCII digits
// counts, so describe decorations such as "3-2-g1a2b3c4" and pre-release
// suffixes such as "0-rc1" parse cleanly. A field with no leading digit
// yields ErrMalformedTag.
func ParseTag(tag string) (major, minor, patch uint64, err error) {
	fields := strings.Split(tag, ".")
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q has %d dot-separated fields, need 3", ErrMalformedTag, tag, len(fields))
	}

	parts := make([]uint64, 3)
	for i := 0; i < 3; i++ {
		digits := leadingDigits(fields[i])
		if digits == "" {
			return 0, 0, 0, fmt.Errorf("%w: field %d of %q does not start with a digit", ErrMalformedTag, i+1, tag)
		}
		n, perr := strconv.ParseUint(digits, 10, 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: field %d of %q: %v", ErrMalformedTag, i+1, tag, perr)
		}
		parts[i] = n
	}

	return parts[0], parts[1], parts[2], nil
}

// leadingDigits returns the longest prefix of s consisting of ASCII digits.
func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}
