package mathx

import "golang.org/x/exp/constraints"

// CeilDiv returns a/b rounded up without overflowing near the type's
// maximum. Division by zero yields 0.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
