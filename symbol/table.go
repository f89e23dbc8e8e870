package symbol

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/go-asb/internal/util"
)

// Default prefixes of the definitions header.
const (
	DefaultTypePrefix    = "ASB_PKGTYPE_"
	DefaultCommandPrefix = "ASB_CMD_"
)

//go:embed definitions.h
var embeddedDefinitions string

// Symbol is a code and its symbolic name.
type Symbol struct {
	Code byte
	Name string
}

// Table maps packet type and command codes to names. It is immutable once loaded and safe
// for concurrent use.
type Table struct {
	types    map[byte]string
	commands map[byte]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		types:    make(map[byte]string),
		commands: make(map[byte]string),
	}
}

// [#define] NAME [0x]HEX [rest]
var defineRegexp = regexp.MustCompile(`^\s*(?:#\s*define\s+)?([A-Za-z_]\w*)\s+(?:0[xX])?([0-9A-Fa-f]+)\b(.*)$`)

// Load scans a definitions source and returns the resulting table.
func Load(text string, opts ...Option) *Table {
	cfg := loadConfig{
		typePrefix:    DefaultTypePrefix,
		commandPrefix: DefaultCommandPrefix,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	t := NewTable()
	for _, line := range strings.Split(text, "\n") {
		m := defineRegexp.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		name, rest := m[1], m[3]

		var dst map[byte]string
		switch {
		case cfg.typePrefix != "" && strings.HasPrefix(name, cfg.typePrefix):
			dst = t.types
		case cfg.commandPrefix != "" && strings.HasPrefix(name, cfg.commandPrefix):
			dst = t.commands
		default:
			continue
		}

		code, err := util.ParseHex(m[2], 8)
		if err != nil {
			continue
		}

		if comment := trailingComment(rest); comment != "" {
			name = name + " (" + comment + ")"
		}
		dst[byte(code)] = name
	}

	return t
}

// trailingComment returns the trimmed text that follows a definition's value. Comment
// markers of a "//" or "/* */" comment are removed; other text is taken as it is.
func trailingComment(rest string) string {
	rest = strings.TrimSpace(rest)
	switch {
	case strings.HasPrefix(rest, "//"):
		rest = rest[2:]
	case strings.HasPrefix(rest, "/*"):
		rest, _, _ = strings.Cut(rest[2:], "*/")
	}

	return strings.TrimSpace(rest)
}

// LoadFile loads the definitions file at path.
//
// If the file cannot be read, LoadFile returns an empty table together with the error, so
// callers can report the problem and keep decoding without names.
func LoadFile(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewTable(), fmt.Errorf("symbol: read definitions: %w", err)
	}

	return Load(string(data), opts...), nil
}

var defaultTable = sync.OnceValue(func() *Table {
	return Load(embeddedDefinitions)
})

// Default returns the table of the embedded protocol definitions.
func Default() *Table {
	return defaultTable()
}

// Type returns the name of a packet type code.
func (t *Table) Type(code byte) (string, bool) {
	name, ok := t.types[code]
	return name, ok
}

// Command returns the name of a command code.
func (t *Table) Command(code byte) (string, bool) {
	name, ok := t.commands[code]
	return name, ok
}

// Types returns all packet type symbols ordered by code.
func (t *Table) Types() []Symbol {
	return sortedSymbols(t.types)
}

// Commands returns all command symbols ordered by code.
func (t *Table) Commands() []Symbol {
	return sortedSymbols(t.commands)
}

// Len returns the total number of symbols.
func (t *Table) Len() int {
	return len(t.types) + len(t.commands)
}

func sortedSymbols(m map[byte]string) []Symbol {
	symbols := make([]Symbol, 0, len(m))
	for code, name := range m {
		symbols = append(symbols, Symbol{Code: code, Name: name})
	}
	slices.SortFunc(symbols, func(a, b Symbol) int {
		return int(a.Code) - int(b.Code)
	})

	return symbols
}
