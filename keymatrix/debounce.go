// Package keymatrix scans a row/column switch matrix, debounces every
// position and resolves pressed positions into bounded report buffers.
package keymatrix

import "keymatrix-go/x/mathx"

// Filter turns one position's raw sample stream into a stable signal.
// Update is called once per scan tick; onPress (may be nil) fires exactly
// once per rising edge of the stable signal.
type Filter interface {
	Update(raw bool, onPress func()) bool
}

// Confidence range of the hysteresis counter, split in thirds.
const (
	LevelMax      uint8 = 9
	RiseThreshold uint8 = 6 // stable goes high at level >= 6
	FallThreshold uint8 = 3 // stable goes low at level <= 3
)

// DebounceState is a saturating up/down counter with a dead band between
// the two thresholds. A bounce that never crosses a threshold is absorbed.
type DebounceState struct {
	level uint8
	state bool
}

func (d *DebounceState) Update(raw bool, onPress func()) bool {
	if raw {
		d.level = mathx.IncSat(d.level, LevelMax)
	} else {
		d.level = mathx.DecSat(d.level, 0)
	}
	switch {
	case !d.state && d.level >= RiseThreshold:
		d.state = true
		if onPress != nil {
			onPress()
		}
	case d.state && d.level <= FallThreshold:
		d.state = false
	}
	return d.state
}

func (d *DebounceState) Level() uint8  { return d.level }
func (d *DebounceState) Pressed() bool { return d.state }
