package pointer

// Curve maps a per-axis offset from the origin to sub-report motion units.
// Curves must be odd-symmetric and zero at zero.
type Curve func(d int32) int64

// DefaultGain and DefaultScale give a usable cursor speed for a 10-bit
// joystick sampled every 10 ms. Bigger scale means a slower cursor.
const (
	DefaultGain  = 500
	DefaultScale = 40_000
)

// Linear scales the offset by gain.
func Linear(gain int64) Curve {
	return func(d int32) int64 { return int64(d) * gain }
}

// Quadratic accelerates: d·|d|·gain.
func Quadratic(gain int64) Curve {
	return func(d int32) int64 {
		v := int64(d)
		if v < 0 {
			return -v * v * gain
		}
		return v * v * gain
	}
}
