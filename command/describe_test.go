package command

import (
	"testing"

	"github.com/arloliu/go-asb/asb"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		payload  []byte
		expected string
	}{
		{[]byte{0x02}, "Legacy 4 Byte Message"},
		{[]byte{0x21}, "The sending node has just booted"},
		{[]byte{0x40}, "The sending node requested the current state of this group"},
		{[]byte{0x50}, "0-bit-message"},
		{[]byte{0x51, 0x01}, "1-bit-message, state is 1"},
		{[]byte{0x52, 0x4B}, "percental Message, state is 75%"},
		{[]byte{0x70}, "PING request"},
		{[]byte{0x71}, "PONG (PING response)"},
		{[]byte{0x80, 0x00, 0xAB}, "Request to read configuration register 0x00ab"},
		{[]byte{0x81, 0x12, 0x34, 0x0F}, "Request to write configuration register 0x1234 with value 0x0f"},
		{[]byte{0x82, 0x00, 0x01}, "Request to activate configuration register 0x0001"},
		{[]byte{0x85, 0x07, 0xFF}, "Request to change node-ID to 0x07ff"},
		{[]byte{0xA0, 0x00, 0xC8}, "Temperature is 20.0°C"},
		{[]byte{0xA0, 0xFF, 0x38}, "Temperature is -20.0°C"},
		{[]byte{0xA1, 0x01, 0xF5}, "Humidity is 50.1%RH"},
		{[]byte{0xA2, 0x27, 0x95}, "Pressure is 1013.3hPa"},
		{[]byte{0xA5, 0x00, 0x01, 0x00, 0x00}, "LUX is 65536"},
		{[]byte{0xA6, 0x00, 0x19}, "UV-Index is 2.5"},
		{[]byte{0xA7, 0x00, 0x00, 0x01, 0x2C}, "IR is 300"},
		{[]byte{0xC0, 0x08, 0xFC}, "Voltage is 230.0V"},
		{[]byte{0xC1, 0x00, 0x0F}, "Ampere is 1.5A"},
		{[]byte{0xC2, 0x0D, 0x7A}, "Power is 345.0VA"},
		{[]byte{0xD0, 0x2A}, "percental sensor is 42%"},
		{[]byte{0xD1, 0x03, 0xE7}, "permille sensor is 999‰"},
		{[]byte{0xD2, 0x01, 0x90}, "parts per million sensor is 400"},
		{[]byte{0xD5, 0x00, 0x01}, "x per year sensor is 1"},
		{[]byte{0xD6, 0x00, 0x02}, "x per month sensor is 2"},
		{[]byte{0xD7, 0x00, 0x03}, "x per day sensor is 3"},
		{[]byte{0xD8, 0x00, 0x04}, "x per hour sensor is 4"},
		{[]byte{0xD9, 0x0B, 0xB8}, "x per minute sensor is 3000"},
		{[]byte{0xDA, 0x00, 0x06}, "x per second sensor is 6"},
		{[]byte{0x70, 0xAA, 0xBB}, "PING request"},
	}

	for _, test := range tests {
		desc, ok := Describe(test.payload)
		require.True(ok, "% X", test.payload)
		require.Equal(test.expected, desc, "% X", test.payload)
	}
}

func TestDescribe_Absent(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		description string
		payload     []byte
	}{
		{"nil payload", nil},
		{"empty payload", []byte{}},
		{"unknown code", []byte{0x33}},
		{"PM2.5 has no interpretation", []byte{0xB0, 0x00, 0x10}},
		{"PM10 has no interpretation", []byte{0xB1, 0x00, 0x10}},
		{"switch without state", []byte{0x51}},
		{"register read without register", []byte{0x80, 0x00}},
		{"register write without value", []byte{0x81, 0x00, 0x01}},
		{"temperature with one operand", []byte{0xA0, 0x00}},
		{"lux with two operands", []byte{0xA5, 0x00, 0x01}},
	}

	for _, test := range tests {
		desc, ok := Describe(test.payload)
		require.False(ok, test.description)
		require.Empty(desc, test.description)
	}
}

func TestKnown(t *testing.T) {
	require := require.New(t)

	require.True(Known(asb.CmdPing))
	require.True(Known(asb.CmdSensorPerSecond))
	require.False(Known(asb.CmdPM25))
	require.False(Known(0x00))
}
