// Package mode decides when dual-purpose keys act as pointer buttons.
package mode

import (
	"keymatrix-go/keymap"
	"keymatrix-go/keymatrix"
	"keymatrix-go/types"
	"keymatrix-go/x/mathx"
)

// DefaultThreshold is the pointer travel, in report units, needed before
// dual keys become pointer buttons.
const DefaultThreshold = 5

// State of the arbiter.
type State uint8

const (
	PointerOff State = iota
	PointerOn
)

func (s State) String() string {
	if s == PointerOn {
		return "pointer"
	}
	return "keyboard"
}

// Arbiter accumulates pointer travel ("mouseness") while only modifier keys
// are held, and drops back to keyboard mode as soon as anything else is
// typed.
type Arbiter struct {
	mouseness uint64
	threshold uint64
	modifiers keymap.ModifierSet
}

// New returns an arbiter in the PointerOff state. A zero threshold selects
// DefaultThreshold; a nil modifier set selects keymap.MouseModifierKeys.
func New(threshold uint64, modifiers keymap.ModifierSet) *Arbiter {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if modifiers == nil {
		modifiers = keymap.MouseModifierKeys
	}
	return &Arbiter{threshold: threshold, modifiers: modifiers}
}

// Evaluate runs once per reporting cycle, after the scan and the pointer
// report, and returns the state that the next scan must use.
func (a *Arbiter) Evaluate(dx, dy int8, keys *keymatrix.KeySet, consumer *keymatrix.ConsumerList) State {
	a.mouseness = mathx.AddSatU(a.mouseness, uint64(mathx.Abs(int16(dx))))
	a.mouseness = mathx.AddSatU(a.mouseness, uint64(mathx.Abs(int16(dy))))

	if a.mouseness != 0 && !(consumer.IsEmpty() && keys.All(a.isModifier)) {
		a.mouseness = 0
	}
	return a.State()
}

func (a *Arbiter) isModifier(k types.Keycode) bool { return a.modifiers.Contains(k) }

// State reports the current mode without changing it.
func (a *Arbiter) State() State {
	if a.mouseness >= a.threshold {
		return PointerOn
	}
	return PointerOff
}

func (a *Arbiter) Active() bool      { return a.State() == PointerOn }
func (a *Arbiter) Mouseness() uint64 { return a.mouseness }
func (a *Arbiter) Threshold() uint64 { return a.threshold }
