package command

// ToUint16 combines two big-endian bytes into an unsigned 16-bit value.
func ToUint16(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// ToInt16 combines two big-endian bytes into a two's complement signed 16-bit value.
func ToInt16(hi, lo byte) int16 {
	return int16(ToUint16(hi, lo)) //nolint:gosec
}

// ToUint32 combines four big-endian bytes into an unsigned 32-bit value.
func ToUint32(b0, b1, b2, b3 byte) uint32 {
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
}

// ToInt32 combines four big-endian bytes into a two's complement signed 32-bit value.
func ToInt32(b0, b1, b2, b3 byte) int32 {
	return int32(ToUint32(b0, b1, b2, b3)) //nolint:gosec
}
