// Package command interprets and builds ASB payloads.
//
// The first payload byte is the command code, the remaining bytes are its operands.
// Describe turns a payload into a human-readable sentence, Measure extracts a typed sensor
// reading, and the builder functions assemble payloads for the most common commands.
//
// Multi-byte operands are big-endian:
//
//	payload := command.Temperature(200)  // []byte{0xA0, 0x00, 0xC8}
//	text, _ := command.Describe(payload) // "Temperature is 20.0°C"
//
// Codes without an interpretation, e.g. 0xB0 (PM2.5), and payloads too short for the
// command's operands have no description.
package command
