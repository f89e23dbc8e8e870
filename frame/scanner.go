package frame

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/arloliu/go-asb/asb"
)

// MaxLineSize is the longest line the Scanner decodes.
// A maximal in-range frame is well below 100 bytes; the rest is room for line noise.
const MaxLineSize = 4096

// Line is one non-blank input line and the outcome of decoding it.
type Line struct {
	// Raw is the line without its terminator, cut to MaxLineSize bytes.
	Raw string
	// Packet is the decoded packet. It is the zero Packet when Err is not nil.
	Packet asb.Packet
	// Err wraps ErrNotAPacket if the line is not a frame.
	Err error
}

// Scanner reads frames line by line from an io.Reader.
//
// Scanner does no I/O of its own beyond reading r; the caller owns opening, closing and
// configuring the underlying device.
type Scanner struct {
	r   *bufio.Reader
	buf []byte
	err error
}

// NewScanner returns a Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r:   bufio.NewReaderSize(r, MaxLineSize),
		buf: make([]byte, 0, 256),
	}
}

// Next returns the next non-blank line.
//
// A line that is not a frame is returned with Line.Err set and a nil error. This includes
// a line longer than MaxLineSize, whose remainder is discarded up to the next newline.
// The error return is reserved for the reader: it is io.EOF at the end of input, or the
// read error.
func (s *Scanner) Next() (Line, error) {
	for {
		if s.err != nil {
			return Line{}, s.err
		}

		data, tooLong, err := s.readLine()
		if err != nil {
			s.err = err
			if !errors.Is(err, io.EOF) || len(data) == 0 {
				return Line{}, err
			}
		}

		raw := strings.TrimRight(string(data), "\r")
		if tooLong {
			return Line{Raw: raw, Err: ErrLineTooLong}, nil
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		pkt, decErr := Decode(raw)

		return Line{Raw: raw, Packet: pkt, Err: decErr}, nil
	}
}

// readLine reads up to the next '\n' and returns the line without it. At most
// MaxLineSize bytes are kept; the bool reports that more were dropped.
func (s *Scanner) readLine() ([]byte, bool, error) {
	s.buf = s.buf[:0]
	tooLong := false
	for {
		chunk, err := s.r.ReadSlice('\n')
		chunk = bytes.TrimSuffix(chunk, []byte{'\n'})

		if room := MaxLineSize - len(s.buf); len(chunk) > room {
			// a trailing '\r' is not part of the line
			if len(chunk) != room+1 || chunk[room] != '\r' || errors.Is(err, bufio.ErrBufferFull) {
				tooLong = true
			}
			chunk = chunk[:room]
		}
		s.buf = append(s.buf, chunk...)

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		return s.buf, tooLong, err
	}
}
