package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/command"
	"github.com/arloliu/go-asb/frame"
	"github.com/arloliu/go-asb/symbol"
)

const reportSeparator = "---"

// reporter renders decoded lines in the human-readable report format.
type reporter struct {
	w       io.Writer
	symbols *symbol.Table
	now     func() time.Time
}

func newReporter(w io.Writer, symbols *symbol.Table) *reporter {
	return &reporter{w: w, symbols: symbols, now: time.Now}
}

// writeLine reports a decoded line, or "Not detected: <line>" if it is not a frame.
func (r *reporter) writeLine(line frame.Line) {
	if line.Err != nil {
		fmt.Fprintf(r.w, "Not detected: %s\n%s\n", line.Raw, reportSeparator)
		return
	}
	r.writePacket(line.Packet)
}

func (r *reporter) writePacket(p asb.Packet) {
	typeName, ok := r.symbols.Type(byte(p.Type))
	if !ok {
		typeName = p.Type.String()
	}
	port := asb.WirePortNone
	if p.HasPort() {
		port = p.Port
	}

	fmt.Fprintln(r.w, reportSeparator)
	fmt.Fprintln(r.w, r.now().Format(time.DateTime))
	fmt.Fprintf(r.w, "Packet type: %s (0x%02X)\n", typeName, byte(p.Type))
	fmt.Fprintf(r.w, "Target:      0x%04X\n", p.Target)
	fmt.Fprintf(r.w, "Source:      0x%03X\n", p.Source)
	fmt.Fprintf(r.w, "Port:        0x%02X\n", port)
	fmt.Fprintf(r.w, "Length:      0x%02X\n", p.Len())

	if p.Len() > 0 {
		tw := tablewriter.NewWriter(r.w)
		tw.SetHeader([]string{"#", "Byte", "Symbol"})
		tw.SetAutoWrapText(false)
		for i, b := range p.Payload {
			sym := ""
			if i == 0 {
				sym, _ = r.symbols.Command(b)
			}
			tw.Append([]string{strconv.Itoa(i), fmt.Sprintf("0x%02X", b), sym})
		}
		tw.Render()
	}

	if desc, ok := command.Describe(p.Payload); ok {
		fmt.Fprintln(r.w, desc)
	}
	fmt.Fprintln(r.w, reportSeparator)
}

// writeSymbols renders the table of packet types and commands.
func writeSymbols(w io.Writer, table *symbol.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Kind", "Code", "Name"})
	tw.SetAutoWrapText(false)
	for _, s := range table.Types() {
		tw.Append([]string{"type", fmt.Sprintf("0x%02X", s.Code), s.Name})
	}
	for _, s := range table.Commands() {
		tw.Append([]string{"command", fmt.Sprintf("0x%02X", s.Code), s.Name})
	}
	tw.Render()
}
