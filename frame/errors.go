package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAPacket indicates that a line could not be parsed as a frame.
	// Every decode failure wraps this error.
	ErrNotAPacket = errors.New("not a packet")

	// ErrLengthMismatch indicates that the number of payload groups differs from the
	// declared payload length. It is always reported together with ErrNotAPacket.
	ErrLengthMismatch = errors.New("payload length mismatch")

	// ErrLineTooLong is reported by Scanner for a line longer than MaxLineSize.
	// It wraps ErrNotAPacket.
	ErrLineTooLong = fmt.Errorf("%w: line exceeds %d bytes", ErrNotAPacket, MaxLineSize)
)
