package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. Callers pass lo <= hi.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Abs for signed integers. Abs(min) saturates to max instead of wrapping.
func Abs[T constraints.Signed](x T) T {
	if x >= 0 {
		return x
	}
	if -x < 0 {
		return ^x // -(min) overflows; ^min == max
	}
	return -x
}

// Neg negates x, saturating at the type's maximum for the minimum value.
func Neg[T constraints.Signed](x T) T {
	if x < 0 && -x < 0 {
		return ^x
	}
	return -x
}

// IncSat adds one, holding at hi.
func IncSat[T constraints.Integer](v, hi T) T {
	if v >= hi {
		return hi
	}
	return v + 1
}

// DecSat subtracts one, holding at lo.
func DecSat[T constraints.Integer](v, lo T) T {
	if v <= lo {
		return lo
	}
	return v - 1
}

// AddSatU adds two unsigned values, holding at the type's maximum on overflow.
func AddSatU[T constraints.Unsigned](a, b T) T {
	s := a + b
	if s < a {
		return ^T(0)
	}
	return s
}
