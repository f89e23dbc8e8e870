package util

import (
	"errors"
	"strconv"
	"strings"
)

// CloneSlice clones slice with cloneSize.
// This function will use src length as the clone size if cloneSize is 0.
//
// A nil src with cloneSize 0 yields nil, so cloned empty payloads compare equal to
// their source.
func CloneSlice[T any](src []T, cloneSize int) []T {
	if cloneSize == 0 {
		if src == nil {
			return nil
		}
		cloneSize = len(src)
	}
	clone := make([]T, cloneSize)
	copy(clone, src)

	return clone
}

// ErrEmptyHex is returned by ParseHex for an empty digit run.
var ErrEmptyHex = errors.New("empty hex value")

// ParseHex parses an unsigned hexadecimal value that fits in bitSize bits.
//
// Any number of digits is accepted, including leading zeros, in either case.
// An optional "0x" or "0X" prefix is stripped before parsing.
func ParseHex(s string, bitSize int) (uint64, error) {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return 0, ErrEmptyHex
	}

	// strip leading zeros so long zero-padded runs don't trip the syntax check
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return 0, nil
	}

	return strconv.ParseUint(trimmed, 16, bitSize)
}
