// Package symbol resolves packet type and command codes to the symbolic names found in a
// C-style definitions header.
//
// A definitions source is scanned line by line for entries of the form
//
//	#define ASB_CMD_S_TEMP 0xA0 //x*0.1°C, int
//
// Names starting with the type prefix ("ASB_PKGTYPE_") become packet type names, names
// starting with the command prefix ("ASB_CMD_") become command names. Non-empty trailing
// text is appended in parentheses, e.g. "ASB_CMD_S_TEMP (x*0.1°C, int)"; the markers of a
// "//" or "/* */" comment are dropped first. Lines
// that do not match are ignored, and a later definition of the same code replaces an
// earlier one.
//
// Default returns the table built from the definitions embedded in this package.
package symbol
