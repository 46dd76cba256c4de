// Package pointer integrates absolute joystick samples into relative
// pointer motion.
package pointer

import (
	"encoding/binary"

	"keymatrix-go/x/mathx"
)

// SampleSize is the length of the raw record read from the device.
const SampleSize = 5

// Sample is one raw absolute reading.
type Sample struct {
	X, Y   int16
	Button bool
}

// DecodeSample parses the wire record: bytes 0-1 big-endian Y, bytes 2-3
// big-endian X (negated to match the sensor's mounting), byte 4 == 1 when
// the button is down.
func DecodeSample(b [SampleSize]byte) Sample {
	y := int16(binary.BigEndian.Uint16(b[0:2]))
	x := int16(binary.BigEndian.Uint16(b[2:4]))
	return Sample{
		X:      mathx.Neg(x),
		Y:      y,
		Button: b[4] == 1,
	}
}

// Source yields raw samples. A failed read means "no sample this tick".
type Source interface {
	ReadSample() (Sample, error)
}
