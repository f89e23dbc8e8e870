package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneSlice(t *testing.T) {
	require := require.New(t)

	src := []byte{1, 2, 3}
	clone := CloneSlice(src, 0)
	require.Equal(src, clone)

	clone[0] = 9
	require.Equal(byte(1), src[0])

	require.Equal([]byte{1, 2, 3, 0}, CloneSlice(src, 4))
	require.Nil(CloneSlice[byte](nil, 0))
	require.Equal([]byte{}, CloneSlice([]byte{}, 0))
}

func TestParseHex(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		input    string
		bitSize  int
		expected uint64
	}{
		{"0", 8, 0},
		{"ff", 8, 0xff},
		{"FF", 8, 0xff},
		{"0x7ff", 16, 0x7ff},
		{"0X7FF", 16, 0x7ff},
		{"0000000000000000000001", 8, 1},
		{"00000", 8, 0},
		{"ffffffff", 32, 0xffffffff},
	}

	for _, test := range tests {
		v, err := ParseHex(test.input, test.bitSize)
		require.NoError(err, test.input)
		require.Equal(test.expected, v, test.input)
	}

	_, err := ParseHex("", 8)
	require.ErrorIs(err, ErrEmptyHex)

	_, err = ParseHex("0x", 8)
	require.ErrorIs(err, ErrEmptyHex)

	_, err = ParseHex("100", 8)
	require.ErrorIs(err, strconv.ErrRange)

	_, err = ParseHex("12g", 16)
	require.ErrorIs(err, strconv.ErrSyntax)
}
