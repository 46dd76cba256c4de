package keymatrix

import (
	"math/rand"
	"testing"
)

func feed(d Filter, raw bool, n int, onPress func()) (state bool) {
	for i := 0; i < n; i++ {
		state = d.Update(raw, onPress)
	}
	return state
}

func TestDebounceRisesAtUpperThreshold(t *testing.T) {
	var d DebounceState
	for i := 1; i < int(RiseThreshold); i++ {
		if d.Update(true, nil) {
			t.Fatalf("pressed after %d samples, threshold is %d", i, RiseThreshold)
		}
	}
	if !d.Update(true, nil) {
		t.Fatalf("not pressed at level %d", d.Level())
	}
}

func TestDebounceFallsAtLowerThreshold(t *testing.T) {
	var d DebounceState
	feed(&d, true, 20, nil)
	falls := int(LevelMax - FallThreshold)
	for i := 1; i < falls; i++ {
		if !d.Update(false, nil) {
			t.Fatalf("released after %d samples at level %d", i, d.Level())
		}
	}
	if d.Update(false, nil) {
		t.Fatalf("still pressed at level %d", d.Level())
	}
}

func TestDebounceSingleGlitchIgnored(t *testing.T) {
	var d DebounceState
	feed(&d, true, 20, nil)
	if !d.Update(false, nil) {
		t.Fatal("one low sample released a held key")
	}
	if !feed(&d, true, 1, nil) {
		t.Fatal("state lost after glitch")
	}

	var idle DebounceState
	if idle.Update(true, nil) {
		t.Fatal("one high sample pressed an idle key")
	}
	if feed(&idle, false, 1, nil) {
		t.Fatal("idle key pressed after glitch")
	}
}

func TestDebounceSaturates(t *testing.T) {
	var d DebounceState
	feed(&d, true, 100, nil)
	if d.Level() != LevelMax {
		t.Fatalf("level = %d, want %d", d.Level(), LevelMax)
	}
	d.Update(true, nil)
	if d.Level() != LevelMax {
		t.Fatalf("level moved past max: %d", d.Level())
	}
	feed(&d, false, 100, nil)
	if d.Level() != 0 {
		t.Fatalf("level = %d, want 0", d.Level())
	}
	d.Update(false, nil)
	if d.Level() != 0 {
		t.Fatalf("level moved below zero: %d", d.Level())
	}
}

func TestDebouncePartialBounceProducesNoChange(t *testing.T) {
	var d DebounceState
	presses := 0
	for i := 0; i < 50; i++ {
		d.Update(i%2 == 0, func() { presses++ })
	}
	if d.Pressed() || presses != 0 {
		t.Fatalf("alternating input produced a press (state=%v presses=%d)", d.Pressed(), presses)
	}
}

func TestDebounceOnPressOncePerEdge(t *testing.T) {
	var d DebounceState
	presses := 0
	inc := func() { presses++ }
	// bounce on the way in, hold, bounce on the way out, then press again
	seq := []bool{true, false, true, true, false, true, true, true, true, true, true, true}
	for _, raw := range seq {
		d.Update(raw, inc)
	}
	feed(&d, true, 30, inc)
	if presses != 1 {
		t.Fatalf("presses = %d after first hold, want 1", presses)
	}
	feed(&d, false, 30, inc)
	feed(&d, true, 30, inc)
	if presses != 2 {
		t.Fatalf("presses = %d after second hold, want 2", presses)
	}
}

func TestDebounceTransitionsOnlyAtThresholds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var d DebounceState
	prev := false
	for i := 0; i < 10000; i++ {
		raw := rng.Intn(3) != 0
		got := d.Update(raw, nil)
		if d.Level() > LevelMax {
			t.Fatalf("level %d out of range", d.Level())
		}
		if got != prev {
			if got && d.Level() < RiseThreshold {
				t.Fatalf("rose at level %d", d.Level())
			}
			if !got && d.Level() > FallThreshold {
				t.Fatalf("fell at level %d", d.Level())
			}
		}
		prev = got
	}
}

func TestCooldownLatch(t *testing.T) {
	c := NewCooldown(5)
	presses := 0
	inc := func() { presses++ }
	if !c.Update(true, inc) {
		t.Fatal("first change should be accepted immediately")
	}
	// bounce inside the window is ignored
	for i := 0; i < 4; i++ {
		if !c.Update(false, inc) {
			t.Fatalf("change accepted %d ticks into the cooldown", i+1)
		}
	}
	if c.Update(false, inc) {
		t.Fatal("change should be accepted once the cooldown expires")
	}
	if presses != 1 {
		t.Fatalf("presses = %d, want 1", presses)
	}
}

func TestNewFiltersStrategy(t *testing.T) {
	f := NewFilters(2, 3, StrategyCooldown, 10)
	if len(f) != 2 || len(f[1]) != 3 {
		t.Fatalf("shape = %dx%d", len(f), len(f[1]))
	}
	if _, ok := f[1][2].(*CooldownState); !ok {
		t.Fatalf("filter type %T", f[1][2])
	}
	if _, ok := NewFilters(1, 1, StrategyHysteresis, 0)[0][0].(*DebounceState); !ok {
		t.Fatal("hysteresis strategy should yield DebounceState")
	}
}
