// Package canid packs ASB packet metadata into 29-bit extended CAN identifiers and back.
//
// Bit layout of an identifier, most significant first:
//
//	31     extended frame flag
//	28-29  packet type
//	23-27  port (unicast only)
//	11-26  target (11 bits for unicast, 16 bits otherwise)
//	0-10   source
//
// The payload travels in the CAN data field and is not part of the identifier.
package canid

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-asb/asb"
)

// ExtendedFlag marks an identifier as a 29-bit extended CAN identifier.
const ExtendedFlag uint32 = 0x80000000

const (
	typeShift   = 28
	portShift   = 23
	targetShift = 11

	typeMask        = 0x03
	portMask        = 0x1F
	nodeMask        = 0x7FF
	groupTargetMask = 0xFFFF
)

var (
	// ErrInvalidType indicates a packet type that does not fit into two bits.
	ErrInvalidType = errors.New("canid: invalid packet type")
	// ErrTargetRange indicates a target address that does not fit the type's target bits.
	ErrTargetRange = errors.New("canid: target out of range")
	// ErrPortRange indicates a unicast port outside 0x00-0x1F.
	ErrPortRange = errors.New("canid: port out of range")
	// ErrSourceRange indicates a source address above 0x7FF.
	ErrSourceRange = errors.New("canid: source out of range")
)

// Assemble returns the CAN identifier for the given packet metadata.
// The port is only used, and required, for unicast packets.
func Assemble(typ asb.PacketType, target, source uint32, port int) (uint32, error) {
	if typ > typeMask {
		return 0, fmt.Errorf("%w: %d", ErrInvalidType, typ)
	}
	id := ExtendedFlag | uint32(typ)<<typeShift

	if typ == asb.Unicast {
		if target > nodeMask {
			return 0, fmt.Errorf("%w: 0x%04X", ErrTargetRange, target)
		}
		if port < 0 || port > portMask {
			return 0, fmt.Errorf("%w: %d", ErrPortRange, port)
		}
		id |= uint32(port) << portShift //nolint:gosec
	} else if target > groupTargetMask {
		return 0, fmt.Errorf("%w: 0x%04X", ErrTargetRange, target)
	}
	id |= target << targetShift

	if source > nodeMask {
		return 0, fmt.Errorf("%w: 0x%04X", ErrSourceRange, source)
	}

	return id | source, nil
}

// AssemblePacket returns the CAN identifier for the packet's metadata.
func AssemblePacket(p asb.Packet) (uint32, error) {
	return Assemble(p.Type, p.Target, p.Source, p.Port)
}

// Parse extracts the packet metadata from a CAN identifier.
// The returned packet has no payload; unicast packets carry a port, others asb.NoPort.
func Parse(id uint32) asb.Packet {
	p := asb.Packet{
		Type:   asb.PacketType((id >> typeShift) & typeMask),
		Source: id & nodeMask,
		Target: (id >> targetShift) & groupTargetMask,
		Port:   asb.NoPort,
	}
	if p.Type == asb.Unicast {
		p.Port = int((id >> portShift) & portMask)
		p.Target &= nodeMask
	}

	return p
}
