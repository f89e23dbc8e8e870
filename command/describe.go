package command

import (
	"fmt"
	"strconv"

	"github.com/arloliu/go-asb/asb"
)

// entry is the interpretation of one command code.
// Exactly one of text and sensor is set.
type entry struct {
	minLen int // including the command byte
	text   func(payload []byte) string
	sensor *sensor
}

func fixed(s string) func([]byte) string {
	return func([]byte) string { return s }
}

func register(format string) func([]byte) string {
	return func(p []byte) string {
		return fmt.Sprintf(format, ToUint16(p[1], p[2]))
	}
}

var commands = map[byte]entry{
	asb.CmdLegacy8B: {minLen: 1, text: fixed("Legacy 4 Byte Message")},
	asb.CmdBoot:     {minLen: 1, text: fixed("The sending node has just booted")},
	asb.CmdReq:      {minLen: 1, text: fixed("The sending node requested the current state of this group")},
	asb.Cmd0Bit:     {minLen: 1, text: fixed("0-bit-message")},
	asb.Cmd1Bit: {minLen: 2, text: func(p []byte) string {
		return "1-bit-message, state is " + strconv.Itoa(int(p[1]))
	}},
	asb.CmdPercent: {minLen: 2, text: func(p []byte) string {
		return "percental Message, state is " + strconv.Itoa(int(p[1])) + "%"
	}},
	asb.CmdPing:      {minLen: 1, text: fixed("PING request")},
	asb.CmdPong:      {minLen: 1, text: fixed("PONG (PING response)")},
	asb.CmdCfgRead:   {minLen: 3, text: register("Request to read configuration register 0x%04x")},
	asb.CmdCfgCommit: {minLen: 3, text: register("Request to activate configuration register 0x%04x")},
	asb.CmdIdent:     {minLen: 3, text: register("Request to change node-ID to 0x%04x")},
	asb.CmdCfgWrite: {minLen: 4, text: func(p []byte) string {
		return fmt.Sprintf("Request to write configuration register 0x%04x with value 0x%02x", ToUint16(p[1], p[2]), p[3])
	}},

	asb.CmdTemperature: sensorEntry(sensor{label: "Temperature", quantity: "temperature", unit: "°C", width: 2, signed: true, tenths: true}),
	asb.CmdHumidity:    sensorEntry(sensor{label: "Humidity", quantity: "humidity", unit: "%RH", width: 2, tenths: true}),
	asb.CmdPressure:    sensorEntry(sensor{label: "Pressure", quantity: "pressure", unit: "hPa", width: 2, tenths: true}),
	asb.CmdLux:         sensorEntry(sensor{label: "LUX", quantity: "lux", width: 4}),
	asb.CmdUV:          sensorEntry(sensor{label: "UV-Index", quantity: "uv", width: 2, tenths: true}),
	asb.CmdIR:          sensorEntry(sensor{label: "IR", quantity: "ir", width: 4}),
	asb.CmdVoltage:     sensorEntry(sensor{label: "Voltage", quantity: "voltage", unit: "V", width: 2, tenths: true}),
	asb.CmdCurrent:     sensorEntry(sensor{label: "Ampere", quantity: "current", unit: "A", width: 2, tenths: true}),
	asb.CmdPower:       sensorEntry(sensor{label: "Power", quantity: "power", unit: "VA", width: 2, tenths: true}),

	asb.CmdSensorPercent:   sensorEntry(sensor{label: "percental sensor", quantity: "percent", unit: "%", width: 1}),
	asb.CmdSensorPermille:  sensorEntry(sensor{label: "permille sensor", quantity: "permille", unit: "‰", width: 2}),
	asb.CmdSensorPPM:       sensorEntry(sensor{label: "parts per million sensor", quantity: "ppm", width: 2}),
	asb.CmdSensorPerYear:   sensorEntry(sensor{label: "x per year sensor", quantity: "per_year", width: 2}),
	asb.CmdSensorPerMonth:  sensorEntry(sensor{label: "x per month sensor", quantity: "per_month", width: 2}),
	asb.CmdSensorPerDay:    sensorEntry(sensor{label: "x per day sensor", quantity: "per_day", width: 2}),
	asb.CmdSensorPerHour:   sensorEntry(sensor{label: "x per hour sensor", quantity: "per_hour", width: 2}),
	asb.CmdSensorPerMinute: sensorEntry(sensor{label: "x per minute sensor", quantity: "per_minute", width: 2}),
	asb.CmdSensorPerSecond: sensorEntry(sensor{label: "x per second sensor", quantity: "per_second", width: 2}),
}

func sensorEntry(s sensor) entry {
	return entry{minLen: 1 + s.width, sensor: &s}
}

// lookup returns the entry of the payload's command if the payload is long enough for it.
func lookup(payload []byte) (entry, bool) {
	if len(payload) == 0 {
		return entry{}, false
	}
	e, ok := commands[payload[0]]
	if !ok || len(payload) < e.minLen {
		return entry{}, false
	}

	return e, true
}

// Describe returns a human-readable description of a payload, e.g. "PING request".
//
// It returns false if the payload is empty, its command code has no interpretation, or it
// is too short for the command's operands. Trailing bytes beyond the operands are ignored.
func Describe(payload []byte) (string, bool) {
	e, ok := lookup(payload)
	if !ok {
		return "", false
	}
	if e.sensor != nil {
		return e.sensor.label + " is " + e.sensor.measure(payload[0], payload[1:]).String(), true
	}

	return e.text(payload), true
}

// Known reports whether the command code has an interpretation.
func Known(code byte) bool {
	_, ok := commands[code]
	return ok
}
