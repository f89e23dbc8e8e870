package command

import "github.com/arloliu/go-asb/asb"

// Boot returns the payload a node sends after start-up.
func Boot() []byte { return []byte{asb.CmdBoot} }

// Ping returns a PING request payload.
func Ping() []byte { return []byte{asb.CmdPing} }

// Pong returns a PING response payload.
func Pong() []byte { return []byte{asb.CmdPong} }

// Switch returns a 1-bit state payload; any non-zero state means on.
func Switch(state byte) []byte { return []byte{asb.Cmd1Bit, state} }

// Level returns a percental state payload.
func Level(percent byte) []byte { return []byte{asb.CmdPercent, percent} }

// ConfigRead returns a request to read a configuration register.
func ConfigRead(reg uint16) []byte {
	return []byte{asb.CmdCfgRead, byte(reg >> 8), byte(reg)}
}

// ConfigWrite returns a request to write a value to a configuration register.
func ConfigWrite(reg uint16, value byte) []byte {
	return []byte{asb.CmdCfgWrite, byte(reg >> 8), byte(reg), value}
}

// ConfigActivate returns a request to activate a configuration register.
func ConfigActivate(reg uint16) []byte {
	return []byte{asb.CmdCfgCommit, byte(reg >> 8), byte(reg)}
}

// ChangeNodeID returns a request to change the node address of the receiver.
func ChangeNodeID(id uint16) []byte {
	return []byte{asb.CmdIdent, byte(id >> 8), byte(id)}
}

// Temperature returns a temperature reading in tenths of a degree Celsius.
func Temperature(tenths int16) []byte {
	v := uint16(tenths) //nolint:gosec
	return []byte{asb.CmdTemperature, byte(v >> 8), byte(v)}
}

// Humidity returns a relative humidity reading in tenths of a percent.
func Humidity(tenths uint16) []byte {
	return []byte{asb.CmdHumidity, byte(tenths >> 8), byte(tenths)}
}
