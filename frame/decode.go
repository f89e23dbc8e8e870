package frame

import (
	"fmt"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/internal/util"
)

// headerField describes one of the five hex fields before STX.
type headerField struct {
	name    string
	bitSize int
}

var headerFields = [5]headerField{
	{"type", 8},
	{"target", 32},
	{"source", 32},
	{"port", 8},
	{"length", 8},
}

// Decode parses one line of wire text into a packet.
//
// On failure it returns the zero Packet and an error wrapping ErrNotAPacket; a packet is
// never partially populated. Length mismatches additionally wrap ErrLengthMismatch.
func Decode(line string) (asb.Packet, error) {
	l := getLexer(line)
	defer putLexer(l)

	d := decoder{lex: l}
	pkt, err := d.decode()
	if err != nil {
		return asb.Packet{}, err
	}

	return pkt, nil
}

// DecodeBytes is like Decode but takes the line as a byte slice.
func DecodeBytes(line []byte) (asb.Packet, error) {
	return Decode(string(line))
}

// decoder consumes lexer tokens according to the frame grammar.
type decoder struct {
	lex *lexer
}

func (d *decoder) decode() (asb.Packet, error) {
	if _, err := d.expect(tokenTypeSOH); err != nil {
		return asb.Packet{}, err
	}

	var header [len(headerFields)]uint64
	for i, field := range headerFields {
		tok, err := d.expect(tokenTypeHex)
		if err != nil {
			return asb.Packet{}, fmt.Errorf("%w (%s field)", err, field.name)
		}
		header[i], err = util.ParseHex(tok.val, field.bitSize)
		if err != nil {
			return asb.Packet{}, fmt.Errorf("%w: %s field %q: %w", ErrNotAPacket, field.name, tok.val, err)
		}

		delim := tokenTypeUS
		if i == len(headerFields)-1 {
			delim = tokenTypeSTX
		}
		if _, err := d.expect(delim); err != nil {
			return asb.Packet{}, err
		}
	}

	declared := int(header[4])
	payload, err := d.decodePayload(declared)
	if err != nil {
		return asb.Packet{}, err
	}

	port := int(header[3])
	if header[3] == asb.WirePortNone {
		port = asb.NoPort
	}

	return asb.Packet{
		Type:    asb.PacketType(header[0]),
		Target:  uint32(header[1]),
		Source:  uint32(header[2]),
		Port:    port,
		Payload: payload,
	}, nil
}

// decodePayload reads "<byte> US" groups until EOT and checks them against the declared length.
func (d *decoder) decodePayload(declared int) ([]byte, error) {
	var payload []byte
	if declared > 0 {
		payload = make([]byte, 0, declared)
	}

	for {
		tok := d.lex.nextToken()
		switch tok.typ {
		case tokenTypeEOT:
			if len(payload) != declared {
				return nil, fmt.Errorf("%w: %w: declared %d, got %d", ErrNotAPacket, ErrLengthMismatch, declared, len(payload))
			}
			return payload, nil
		case tokenTypeHex:
			v, err := util.ParseHex(tok.val, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: payload byte %d %q: %w", ErrNotAPacket, len(payload), tok.val, err)
			}
			payload = append(payload, byte(v))
			if _, err := d.expect(tokenTypeUS); err != nil {
				return nil, err
			}
		case tokenTypeError:
			return nil, fmt.Errorf("%w: %s", ErrNotAPacket, tok.val)
		default:
			return nil, fmt.Errorf("%w: unexpected %s in payload at offset %d", ErrNotAPacket, tok.typ, tok.pos)
		}
	}
}

// expect returns the next token if it has the given type.
func (d *decoder) expect(typ tokenType) (token, error) {
	tok := d.lex.nextToken()
	if tok.typ == typ {
		return tok, nil
	}
	if tok.typ == tokenTypeError {
		return token{}, fmt.Errorf("%w: %s", ErrNotAPacket, tok.val)
	}

	return token{}, fmt.Errorf("%w: expected %s, got %s at offset %d", ErrNotAPacket, typ, tok.typ, tok.pos)
}
