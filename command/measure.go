package command

import (
	"strconv"
)

// Measurement is a sensor reading carried by a sensor command payload.
type Measurement struct {
	// Code is the command code the reading was extracted from.
	Code byte
	// Quantity is a short lower-case name of the measured quantity, e.g. "temperature".
	Quantity string
	// Value is the scaled reading.
	Value float64
	// Unit is the unit symbol, e.g. "°C". It is empty for dimensionless readings.
	Unit string
	// Decimals is the number of decimals the reading is rendered with.
	Decimals int
}

// FormatValue returns the value rendered with the measurement's decimals, without unit.
func (m Measurement) FormatValue() string {
	return strconv.FormatFloat(m.Value, 'f', m.Decimals, 64)
}

// String returns the value followed by its unit, e.g. "20.0°C".
func (m Measurement) String() string {
	return m.FormatValue() + m.Unit
}

// Measure extracts the sensor reading of a sensor command payload.
//
// It returns false for an empty payload, a command that is not a sensor reading, or a
// payload too short for the reading.
func Measure(payload []byte) (Measurement, bool) {
	e, ok := lookup(payload)
	if !ok || e.sensor == nil {
		return Measurement{}, false
	}

	return e.sensor.measure(payload[0], payload[1:]), true
}

// sensor describes how a sensor command encodes its reading.
type sensor struct {
	label    string // sentence subject used by Describe
	quantity string
	unit     string
	width    int  // operand bytes: 1, 2 or 4
	signed   bool // two's complement
	tenths   bool // value is sent in tenths of the unit
}

func (s *sensor) measure(code byte, operands []byte) Measurement {
	var v float64
	switch s.width {
	case 1:
		v = float64(operands[0])
	case 4:
		if s.signed {
			v = float64(ToInt32(operands[0], operands[1], operands[2], operands[3]))
		} else {
			v = float64(ToUint32(operands[0], operands[1], operands[2], operands[3]))
		}
	default:
		if s.signed {
			v = float64(ToInt16(operands[0], operands[1]))
		} else {
			v = float64(ToUint16(operands[0], operands[1]))
		}
	}

	m := Measurement{Code: code, Quantity: s.quantity, Value: v, Unit: s.unit}
	if s.tenths {
		m.Value = v / 10
		m.Decimals = 1
	}

	return m
}
