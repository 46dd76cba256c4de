// Package conv formats integers for wire telegrams without fmt and without
// allocating.
package conv

// MaxUint64Digits is the length of the longest decimal uint64.
const MaxUint64Digits = 20

// Utoa formats n in decimal into the tail of buf and returns that tail.
// It returns nil when buf is too short to hold every digit.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	for {
		if i == 0 {
			return nil
		}
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			return buf[i:]
		}
	}
}
