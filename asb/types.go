package asb

import "strconv"

// PacketType is the addressing mode of a packet.
type PacketType uint8

// Packet types.
const (
	Broadcast PacketType = 0x00
	Multicast PacketType = 0x01
	Unicast   PacketType = 0x02
)

// String returns the human-readable name of the packet type, or "unknown".
func (t PacketType) String() string {
	switch t {
	case Broadcast:
		return "Broadcast"
	case Multicast:
		return "Multicast"
	case Unicast:
		return "Unicast"
	default:
		return "unknown"
	}
}

// GoString implements fmt.GoStringer.
func (t PacketType) GoString() string {
	return "asb.PacketType(" + strconv.Itoa(int(t)) + ")"
}

// Address, port and payload limits.
const (
	// NoPort marks a packet without a port. It is encoded on the wire as 0xFF.
	NoPort = -1

	// WirePortNone is the wire value of NoPort.
	WirePortNone = 0xFF

	InvalidAddress  = 0x0000
	MinAddress      = 0x0001
	MaxNodeAddress  = 0x07FF // unicast targets and all sources
	MaxGroupAddress = 0xFFFF // multicast and broadcast targets
	MaxPort         = 0x1F
	MaxPayloadLen   = 8
)

// Command codes carried in the first payload byte.
const (
	CmdLegacy8B byte = 0x02
	CmdBoot     byte = 0x21
	CmdReq      byte = 0x40
	Cmd0Bit     byte = 0x50 // generic pulse
	Cmd1Bit     byte = 0x51 // on/off
	CmdPercent  byte = 0x52
	CmdPing     byte = 0x70
	CmdPong     byte = 0x71

	CmdCfgRead   byte = 0x80 // 2-byte register
	CmdCfgWrite  byte = 0x81 // 2-byte register + data
	CmdCfgCommit byte = 0x82 // 2-byte register
	CmdIdent     byte = 0x85 // change node address, 2-byte address

	CmdTemperature byte = 0xA0 // x*0.1°C, signed
	CmdHumidity    byte = 0xA1 // x*0.1%RH
	CmdPressure    byte = 0xA2 // x*0.1hPa
	CmdLux         byte = 0xA5 // 32-bit
	CmdUV          byte = 0xA6 // x*0.1
	CmdIR          byte = 0xA7 // 32-bit
	CmdPM25        byte = 0xB0
	CmdPM10        byte = 0xB1
	CmdVoltage     byte = 0xC0
	CmdCurrent     byte = 0xC1
	CmdPower       byte = 0xC2

	CmdSensorPercent   byte = 0xD0
	CmdSensorPermille  byte = 0xD1
	CmdSensorPPM       byte = 0xD2
	CmdSensorPerYear   byte = 0xD5
	CmdSensorPerMonth  byte = 0xD6
	CmdSensorPerDay    byte = 0xD7
	CmdSensorPerHour   byte = 0xD8
	CmdSensorPerMinute byte = 0xD9
	CmdSensorPerSecond byte = 0xDA
)
