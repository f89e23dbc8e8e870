package frame

import (
	"io"
	"strconv"

	"github.com/arloliu/go-asb/asb"
)

// Control bytes of the frame grammar.
const (
	SOH byte = 0x01 // start of header
	STX byte = 0x02 // start of payload
	EOT byte = 0x04 // end of frame
	US  byte = 0x1F // field separator
)

// lineEnd terminates every encoded frame.
const lineEnd = "\r\n"

// Encode returns the wire text of the packet, including the trailing CR LF.
//
// Encode never fails. Values outside the protocol ranges are written as they are, e.g. a
// port of 0x20 is emitted as "20"; any negative port is written as the "FF" sentinel.
func Encode(p asb.Packet) string {
	return string(Append(make([]byte, 0, encodedSizeHint(len(p.Payload))), p))
}

// EncodeFields returns the wire text of a packet given as individual fields.
func EncodeFields(typ asb.PacketType, target, source uint32, port int, payload []byte) string {
	return Encode(asb.Packet{Type: typ, Target: target, Source: source, Port: port, Payload: payload})
}

// Write encodes the packet and writes it to w.
func Write(w io.Writer, p asb.Packet) error {
	buf := Append(make([]byte, 0, encodedSizeHint(len(p.Payload))), p)
	_, err := w.Write(buf)

	return err
}

// Append appends the wire text of the packet to dst and returns the extended buffer.
func Append(dst []byte, p asb.Packet) []byte {
	dst = append(dst, SOH)
	dst = appendHex(dst, uint64(p.Type))
	dst = append(dst, US)
	dst = appendHex(dst, uint64(p.Target))
	dst = append(dst, US)
	dst = appendHex(dst, uint64(p.Source))
	dst = append(dst, US)
	if p.Port < 0 {
		dst = append(dst, 'F', 'F')
	} else {
		dst = appendHex(dst, uint64(p.Port))
	}
	dst = append(dst, US)
	dst = appendHex(dst, uint64(len(p.Payload)))
	dst = append(dst, STX)
	for _, b := range p.Payload {
		dst = appendHex(dst, uint64(b))
		dst = append(dst, US)
	}
	dst = append(dst, EOT)

	return append(dst, lineEnd...)
}

// appendHex appends v as upper-case hex digits without padding.
func appendHex(dst []byte, v uint64) []byte {
	start := len(dst)
	dst = strconv.AppendUint(dst, v, 16)
	for i := start; i < len(dst); i++ {
		if c := dst[i]; c >= 'a' && c <= 'f' {
			dst[i] = c - ('a' - 'A')
		}
	}

	return dst
}

// encodedSizeHint returns a buffer size that fits a frame with n payload bytes and
// in-range header fields.
func encodedSizeHint(n int) int {
	// SOH, 4 US, STX, EOT, CR, LF + 1+4+3+2+2 header digits + 3 per payload byte
	return 9 + 12 + 3*n
}
