package frame

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/go-asb/asb"
	"github.com/stretchr/testify/require"
)

func TestEncode_EndToEnd(t *testing.T) {
	require := require.New(t)

	pkt := asb.NewUnicast(0x001, 0x002, 0x05, asb.CmdPing)
	wire := Encode(pkt)
	require.Equal("\x012\x1f1\x1f2\x1f5\x1f1\x0270\x1f\x04\r\n", wire)
	require.Equal(wire, EncodeFields(asb.Unicast, 0x001, 0x002, 0x05, []byte{0x70}))

	decoded, err := Decode(wire)
	require.NoError(err)
	require.Equal(pkt, decoded)
}

func TestEncode(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		description string
		pkt         asb.Packet
		expected    string
	}{
		{
			description: "multicast switch message, no port",
			pkt:         asb.NewMulticast(0x0122, 0x001, asb.Cmd1Bit, 0x01),
			expected:    "\x011\x1f122\x1f1\x1fFF\x1f2\x0251\x1f1\x1f\x04\r\n",
		},
		{
			description: "upper-case hex digits",
			pkt:         asb.NewMulticast(0xABCD, 0x7FF, 0xDA, 0x0F),
			expected:    "\x011\x1fABCD\x1f7FF\x1fFF\x1f2\x02DA\x1fF\x1f\x04\r\n",
		},
		{
			description: "empty payload",
			pkt:         asb.NewBroadcast(0x0001, 0x0010),
			expected:    "\x010\x1f1\x1f10\x1fFF\x1f0\x02\x04\r\n",
		},
		{
			description: "any negative port is the FF sentinel",
			pkt:         asb.Packet{Type: asb.Unicast, Target: 1, Source: 1, Port: -42},
			expected:    "\x012\x1f1\x1f1\x1fFF\x1f0\x02\x04\r\n",
		},
		{
			description: "out-of-range values are emitted as they are",
			pkt:         asb.Packet{Type: 7, Target: 0x10000, Source: 0x800, Port: 0x20, Payload: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0x10}},
			expected:    "\x017\x1f10000\x1f800\x1f20\x1fA\x020\x1f0\x1f0\x1f0\x1f0\x1f0\x1f0\x1f0\x1f0\x1f10\x1f\x04\r\n",
		},
	}

	for _, test := range tests {
		require.Equal(test.expected, Encode(test.pkt), test.description)
	}
}

func TestWriteAndAppend(t *testing.T) {
	require := require.New(t)

	pkt := asb.NewMulticast(0x0122, 0x001, asb.Cmd1Bit, 0x01)

	var buf bytes.Buffer
	require.NoError(Write(&buf, pkt))
	require.Equal(Encode(pkt), buf.String())

	dst := Append([]byte("prefix"), pkt)
	require.Equal("prefix"+Encode(pkt), string(dst))
}

func TestDecode_RoundTrip(t *testing.T) {
	require := require.New(t)

	rnd := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	for i := 0; i < 500; i++ {
		var pkt asb.Packet
		switch rnd.IntN(3) {
		case 0:
			pkt = asb.NewUnicast(uint32(rnd.IntN(asb.MaxNodeAddress)+1), uint32(rnd.IntN(asb.MaxNodeAddress)+1), rnd.IntN(asb.MaxPort+1))
		case 1:
			pkt = asb.NewMulticast(uint32(rnd.IntN(asb.MaxGroupAddress)+1), uint32(rnd.IntN(asb.MaxNodeAddress)+1))
		default:
			pkt = asb.NewBroadcast(uint32(rnd.IntN(asb.MaxGroupAddress)+1), uint32(rnd.IntN(asb.MaxNodeAddress)+1))
		}

		n := rnd.IntN(asb.MaxPayloadLen + 1)
		if n > 0 {
			pkt.Payload = make([]byte, n)
			for j := range pkt.Payload {
				pkt.Payload[j] = byte(rnd.UintN(256))
			}
		}

		decoded, err := Decode(Encode(pkt))
		require.NoError(err, pkt.String())
		require.Equal(pkt, decoded, pkt.String())
	}
}

func TestDecode_NoPortSentinel(t *testing.T) {
	require := require.New(t)

	pkt, err := Decode("\x011\x1f122\x1f1\x1fff\x1f2\x0251\x1f1\x1f\x04")
	require.NoError(err)
	require.Equal(asb.NoPort, pkt.Port)
	require.False(pkt.HasPort())
}

func TestDecode_Lenient(t *testing.T) {
	require := require.New(t)

	expected := asb.Packet{Type: asb.Unicast, Target: 0x7AB, Source: 0x002, Port: 0x1F, Payload: []byte{0xA0, 0x00, 0xC8}}

	tests := []struct {
		description string
		input       string
	}{
		{"upper case", "\x012\x1f7AB\x1f2\x1f1F\x1f3\x02A0\x1f0\x1fC8\x1f\x04\r\n"},
		{"lower case", "\x012\x1f7ab\x1f2\x1f1f\x1f3\x02a0\x1f0\x1fc8\x1f\x04"},
		{"leading zeros", "\x0102\x1f000007AB\x1f0002\x1f001F\x1f03\x02A0\x1f00\x1f00C8\x1f\x04"},
		{"text before SOH", "<< 12:00:01 \x012\x1f7AB\x1f2\x1f1F\x1f3\x02A0\x1f0\x1fC8\x1f\x04"},
		{"text after EOT", "\x012\x1f7AB\x1f2\x1f1F\x1f3\x02A0\x1f0\x1fC8\x1f\x04 trailing noise\x01"},
	}

	for _, test := range tests {
		pkt, err := Decode(test.input)
		require.NoError(err, test.description)
		require.Equal(expected, pkt, test.description)
	}
}

func TestDecode_Malformed(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		description    string
		input          string
		expectedErrStr string
	}{
		{"empty input", "", "missing SOH"},
		{"plain text", "hello world", "missing SOH"},
		{"missing STX", "\x012\x1f1\x1f2\x1f5\x1f1\x1f70\x1f\x04", "expected STX"},
		{"missing EOT", "\x012\x1f1\x1f2\x1f5\x1f1\x0270\x1f", "unexpected end of input in payload"},
		{"missing header separator", "\x012\x1f1\x1f2\x1f5\x021\x0270\x1f\x04", "expected US"},
		{"extra header field", "\x012\x1f1\x1f2\x1f5\x1f1\x1f9\x0270\x1f\x04", "expected STX"},
		{"empty header field", "\x012\x1f\x1f2\x1f5\x1f1\x0270\x1f\x04", "expected hex field"},
		{"EOT in header", "\x012\x1f1\x1f2\x04", "unexpected byte 0x04 in header"},
		{"SOH in payload", "\x012\x1f1\x1f2\x1f5\x1f1\x02\x0170\x1f\x04", "unexpected byte 0x01 in payload"},
		{"STX in payload", "\x012\x1f1\x1f2\x1f5\x1f1\x0270\x1f\x02\x04", "unexpected byte 0x02 in payload"},
		{"non-hex digit", "\x012\x1f1\x1fG\x1f5\x1f1\x0270\x1f\x04", "unexpected byte 0x47 in header"},
		{"payload group without US", "\x012\x1f1\x1f2\x1f5\x1f1\x0270\x04", "expected US"},
		{"empty payload group", "\x012\x1f1\x1f2\x1f5\x1f1\x02\x1f\x04", "unexpected US in payload"},
		{"type overflow", "\x01100\x1f1\x1f2\x1f5\x1f0\x02\x04", "type field"},
		{"target overflow", "\x012\x1f100000000\x1f2\x1f5\x1f0\x02\x04", "target field"},
		{"port overflow", "\x012\x1f1\x1f2\x1f100\x1f0\x02\x04", "port field"},
		{"payload byte overflow", "\x012\x1f1\x1f2\x1f5\x1f1\x02170\x1f\x04", "payload byte 0"},
		{"control bytes swapped", "\x022\x1f1\x1f2\x1f5\x1f1\x0170\x1f\x04", "unexpected byte 0x04 in header"},
	}

	for _, test := range tests {
		pkt, err := Decode(test.input)
		require.Error(err, test.description)
		require.ErrorIs(err, ErrNotAPacket, test.description)
		require.Contains(err.Error(), test.expectedErrStr, test.description)
		require.Equal(asb.Packet{}, pkt, test.description)
	}
}

func TestDecode_StrictLength(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		description string
		input       string
	}{
		{"declared 3, got 2", "\x012\x1f1\x1f2\x1f5\x1f3\x02A0\x1f0\x1f\x04"},
		{"declared 3, got 4", "\x012\x1f1\x1f2\x1f5\x1f3\x02A0\x1f0\x1fC8\x1f1\x1f\x04"},
		{"declared 3, got 0", "\x012\x1f1\x1f2\x1f5\x1f3\x02\x04"},
		{"declared 0, got 1", "\x012\x1f1\x1f2\x1f5\x1f0\x0270\x1f\x04"},
	}

	for _, test := range tests {
		_, err := Decode(test.input)
		require.ErrorIs(err, ErrNotAPacket, test.description)
		require.ErrorIs(err, ErrLengthMismatch, test.description)
	}

	pkt, err := Decode("\x012\x1f1\x1f2\x1f5\x1f3\x02A0\x1f0\x1fC8\x1f\x04")
	require.NoError(err)
	require.Equal(3, pkt.Len())
}

func TestDecodeBytes(t *testing.T) {
	require := require.New(t)

	pkt, err := DecodeBytes([]byte(Encode(asb.NewMulticast(0x10, 0x20, asb.CmdPercent, 50))))
	require.NoError(err)
	require.Equal(asb.NewMulticast(0x10, 0x20, asb.CmdPercent, 50), pkt)

	_, err = DecodeBytes(nil)
	require.True(errors.Is(err, ErrNotAPacket))
}
