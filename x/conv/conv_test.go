package conv

import (
	"math"
	"testing"
)

func TestUtoa(t *testing.T) {
	var buf [MaxUint64Digits]byte
	for _, c := range []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{1000, "1000"},
		{math.MaxUint64, "18446744073709551615"},
	} {
		if got := string(Utoa(buf[:], c.n)); got != c.want {
			t.Fatalf("Utoa(%d) = %q, want %q", c.n, got, c.want)
		}
	}
	if got := Utoa(nil, 5); got != nil {
		t.Fatalf("Utoa into empty buffer = %q", got)
	}
	if got := Utoa(buf[:2], 123); got != nil {
		t.Fatalf("Utoa must not truncate, got %q", got)
	}
	if got := string(Utoa(buf[:3], 123)); got != "123" {
		t.Fatalf("exact fit = %q", got)
	}
}
