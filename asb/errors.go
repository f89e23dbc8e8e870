package asb

import "errors"

var (
	// ErrInvalidTarget indicates that the target address is out of range for the packet type.
	// Unicast targets must be in [0x0001, 0x07FF], multicast and broadcast targets in [0x0001, 0xFFFF].
	ErrInvalidTarget = errors.New("invalid target address")

	// ErrInvalidSource indicates that the source address is out of the range [0x0001, 0x07FF].
	ErrInvalidSource = errors.New("invalid source address")

	// ErrInvalidPort indicates that a unicast packet has no port or a port above 0x1F,
	// or that a multicast or broadcast packet carries a port.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidType indicates that the packet type is not Broadcast, Multicast or Unicast.
	ErrInvalidType = errors.New("invalid packet type")

	// ErrPayloadTooLong indicates that the payload exceeds MaxPayloadLen bytes.
	ErrPayloadTooLong = errors.New("payload too long, should be at most 8 bytes")
)
