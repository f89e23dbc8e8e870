// Package asb defines the data model of the aSysBus (ASB) protocol: the logical packet that
// is exchanged between bus nodes, its addressing modes, and the catalogue of command codes
// carried in the first payload byte.
//
// A packet is addressed with a type (Broadcast, Multicast or Unicast), a target address, a
// source address and, for Unicast only, a port:
//
//   - Unicast targets are node addresses in the range 0x0001 to 0x07FF, with a port in 0x00 to 0x1F.
//   - Multicast and Broadcast targets are group addresses in the range 0x0001 to 0xFFFF and carry no port.
//   - Source addresses are node addresses in the range 0x0001 to 0x07FF.
//   - Address 0x0000 marks an invalid packet.
//
// The payload holds up to eight bytes by convention. The codecs in the frame and canid
// packages do not enforce any of these ranges; use Packet.Validate at the application layer.
//
// Usage Example:
//
//	pkt := asb.NewUnicast(0x001, 0x002, 5, asb.CmdPing)
//	if err := pkt.Validate(); err != nil {
//	    // Handle error
//	}
//	wire := frame.Encode(pkt)
package asb
