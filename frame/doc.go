// Package frame implements the ASB text framing format used on serial links between a host
// and a bus node.
//
// A frame is a single line of hexadecimal fields separated by control bytes:
//
//	SOH <type> US <target> US <source> US <port> US <len> STX (<byte> US){len} EOT CR LF
//
// where SOH is 0x01, US is 0x1F, STX is 0x02 and EOT is 0x04. Every field is a run of hex
// digits of any length; the encoder emits upper-case digits without padding, the decoder
// accepts either case and any number of leading zeros. A port of 0xFF on the wire means
// the packet has no port (asb.NoPort).
//
// Decoding is strict about structure: a missing or misplaced control byte, an empty field,
// a value that overflows its field, or a payload whose group count differs from the declared
// length are all rejected with an error wrapping ErrNotAPacket. Text before the first SOH
// and after the EOT is ignored.
//
// Usage Example:
//
//	wire := frame.Encode(asb.NewUnicast(0x001, 0x002, 5, asb.CmdPing))
//	// wire == "\x012\x1f1\x1f2\x1f5\x1f1\x0270\x1f\x04\r\n"
//
//	pkt, err := frame.Decode(wire)
//	if errors.Is(err, frame.ErrNotAPacket) {
//	    // Not a frame, report the raw line
//	}
package frame
