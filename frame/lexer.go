package frame

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arloliu/go-asb/internal/queue"
)

// token represents a piece of frame text that the lexer identified.
type token struct {
	typ tokenType // token type
	val string    // tokenized text
	pos int       // byte offset of the token in the input
}

type tokenType int

const (
	tokenTypeEOF   tokenType = iota // end of frame, trailing text is ignored
	tokenTypeError                  // lexing error, val holds the message
	tokenTypeSOH                    // 0x01
	tokenTypeUS                     // 0x1F
	tokenTypeSTX                    // 0x02
	tokenTypeEOT                    // 0x04
	tokenTypeHex                    // [0-9A-Fa-f]+
)

func (t tokenType) String() string {
	switch t {
	case tokenTypeEOF:
		return "end of input"
	case tokenTypeError:
		return "error"
	case tokenTypeSOH:
		return "SOH"
	case tokenTypeUS:
		return "US"
	case tokenTypeSTX:
		return "STX"
	case tokenTypeEOT:
		return "EOT"
	case tokenTypeHex:
		return "hex field"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

const eof = -1

const hexDigits = "0123456789abcdefABCDEF"

// lexer is a state-function scanner over one line of frame text.
type lexer struct {
	input     string  // input string being lexed
	lastState stateFn // last lexing state function
	state     stateFn // next lexing state function to enter
	pos       int     // current position in the input
	start     int     // start position of a token being lexed in input string
	tokens    *queue.SliceQueue[token]
}

var lexerPool = sync.Pool{New: func() any { return newLexer("") }}

func getLexer(input string) *lexer {
	l, _ := lexerPool.Get().(*lexer)
	l.input = input
	l.state = lexStart
	return l
}

func putLexer(l *lexer) {
	l.input = ""
	l.pos = 0
	l.start = 0
	l.lastState = nil
	l.state = nil
	l.tokens.Reset()
	lexerPool.Put(l)
}

func newLexer(input string) *lexer {
	return &lexer{
		input:  input,
		state:  lexStart,
		tokens: queue.NewSliceQueue[token](4),
	}
}

// next returns the next byte in the input and moves the position, or eof.
func (l *lexer) next() int {
	if l.pos >= len(l.input) {
		return eof
	}
	c := l.input[l.pos]
	l.pos++

	return int(c)
}

// back steps back one byte. It must be called at most once per call of next.
func (l *lexer) back() {
	l.pos--
}

// acceptRun consumes a run of bytes from the valid set.
func (l *lexer) acceptRun(valid string) {
	for l.pos < len(l.input) && strings.IndexByte(valid, l.input[l.pos]) >= 0 {
		l.pos++
	}
}

// emit passes a token to the client.
func (l *lexer) emit(t tokenType) {
	l.tokens.Enqueue(token{typ: t, val: l.input[l.start:l.pos], pos: l.start})
	l.start = l.pos
}

// errorf emits an error token and terminates the running lexer.
func (l *lexer) errorf(format string, args ...any) stateFn {
	l.tokens.Enqueue(token{typ: tokenTypeError, val: fmt.Sprintf(format, args...), pos: l.pos})
	return nil
}

// nextToken returns the next token from the input.
// Once the lexer has terminated and all tokens are consumed, it keeps returning EOF tokens.
func (l *lexer) nextToken() token {
	for {
		if tok, ok := l.tokens.Dequeue(); ok {
			return tok
		}
		if l.state == nil {
			return token{typ: tokenTypeEOF, pos: l.pos}
		}
		l.lastState, l.state = l.state, l.state(l)
	}
}

// stateFn represents the state of the lexer as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexStart skips any text before the first SOH.
func lexStart(l *lexer) stateFn {
	i := strings.IndexByte(l.input[l.pos:], SOH)
	if i < 0 {
		l.pos = len(l.input)
		return l.errorf("missing SOH")
	}
	l.pos += i
	l.start = l.pos
	l.pos++
	l.emit(tokenTypeSOH)

	return lexHeader
}

// lexHeader scans the header fields up to and including STX.
func lexHeader(l *lexer) stateFn {
	switch c := l.next(); {
	case c == eof:
		return l.errorf("unexpected end of input in header")
	case c == int(US):
		l.emit(tokenTypeUS)
		return lexHeader
	case c == int(STX):
		l.emit(tokenTypeSTX)
		return lexPayload
	case isHexDigit(c):
		l.back()
		return lexHex
	default:
		return l.errorf("unexpected byte 0x%02X in header at offset %d", c, l.pos-1)
	}
}

// lexPayload scans the payload groups up to and including EOT.
func lexPayload(l *lexer) stateFn {
	switch c := l.next(); {
	case c == eof:
		return l.errorf("unexpected end of input in payload")
	case c == int(US):
		l.emit(tokenTypeUS)
		return lexPayload
	case c == int(EOT):
		l.emit(tokenTypeEOT)
		return lexEnd
	case isHexDigit(c):
		l.back()
		return lexHex
	default:
		return l.errorf("unexpected byte 0x%02X in payload at offset %d", c, l.pos-1)
	}
}

// lexHex scans a run of hex digits, which is known to be present.
// Returns the previous state function which called lexHex.
func lexHex(l *lexer) stateFn {
	l.acceptRun(hexDigits)
	l.emit(tokenTypeHex)

	return l.lastState
}

// lexEnd terminates the lexer after EOT; whatever follows is not part of the frame.
func lexEnd(l *lexer) stateFn {
	l.tokens.Enqueue(token{typ: tokenTypeEOF, pos: l.pos})
	return nil
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c int) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
