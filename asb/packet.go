package asb

import (
	"fmt"
	"strings"

	"github.com/arloliu/go-asb/internal/util"
)

// Packet is the logical representation of an ASB packet.
//
// The payload length is always len(Payload); there is no separate length field to keep
// in sync.
type Packet struct {
	// Type is the addressing mode.
	Type PacketType
	// Target is the destination node or group address.
	Target uint32
	// Source is the sending node address.
	Source uint32
	// Port is the unicast port, or NoPort.
	Port int
	// Payload holds the command byte followed by its operands.
	Payload []byte
}

// NewUnicast creates a unicast packet addressed to a single node port.
func NewUnicast(target, source uint32, port int, payload ...byte) Packet {
	return Packet{Type: Unicast, Target: target, Source: source, Port: port, Payload: payload}
}

// NewMulticast creates a multicast packet addressed to a group.
func NewMulticast(target, source uint32, payload ...byte) Packet {
	return Packet{Type: Multicast, Target: target, Source: source, Port: NoPort, Payload: payload}
}

// NewBroadcast creates a broadcast packet.
func NewBroadcast(target, source uint32, payload ...byte) Packet {
	return Packet{Type: Broadcast, Target: target, Source: source, Port: NoPort, Payload: payload}
}

// Len returns the number of payload bytes.
func (p Packet) Len() int {
	return len(p.Payload)
}

// HasPort reports whether the packet carries a port.
func (p Packet) HasPort() bool {
	return p.Port >= 0
}

// Command returns the command byte, which is the first payload byte.
// It returns false if the payload is empty.
func (p Packet) Command() (byte, bool) {
	if len(p.Payload) == 0 {
		return 0, false
	}

	return p.Payload[0], true
}

// Clone returns a deep copy of the packet.
func (p Packet) Clone() Packet {
	p.Payload = util.CloneSlice(p.Payload, 0)
	return p
}

// Validate checks the packet against the protocol's address, port and length ranges.
//
// The codecs never call Validate; a decoded packet may well be invalid at the application
// layer, e.g. carry a zero target.
func (p Packet) Validate() error {
	switch p.Type {
	case Unicast:
		if p.Target < MinAddress || p.Target > MaxNodeAddress {
			return fmt.Errorf("%w: 0x%04X", ErrInvalidTarget, p.Target)
		}
		if p.Port < 0 || p.Port > MaxPort {
			return fmt.Errorf("%w: %d", ErrInvalidPort, p.Port)
		}
	case Multicast, Broadcast:
		if p.Target < MinAddress || p.Target > MaxGroupAddress {
			return fmt.Errorf("%w: 0x%04X", ErrInvalidTarget, p.Target)
		}
		if p.HasPort() {
			return fmt.Errorf("%w: %s packet with port %d", ErrInvalidPort, p.Type, p.Port)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidType, p.Type)
	}

	if p.Source < MinAddress || p.Source > MaxNodeAddress {
		return fmt.Errorf("%w: 0x%04X", ErrInvalidSource, p.Source)
	}

	if len(p.Payload) > MaxPayloadLen {
		return fmt.Errorf("%w: got %d", ErrPayloadTooLong, len(p.Payload))
	}

	return nil
}

// String returns a compact single-line representation of the packet,
// e.g. "Unicast 0x0002->0x0001:0x05 [70]".
func (p Packet) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 0x%04X->0x%04X", p.Type, p.Source, p.Target)
	if p.HasPort() {
		fmt.Fprintf(&sb, ":0x%02X", p.Port)
	}
	sb.WriteString(" [")
	for i, b := range p.Payload {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	sb.WriteByte(']')

	return sb.String()
}
