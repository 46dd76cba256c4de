package pointer

import (
	"math"

	"keymatrix-go/x/mathx"
)

// Point is a pair of signed axis values.
type Point[T ~int16 | ~int32 | ~int64] struct {
	X, Y T
}

// Report is what one pointer report can carry.
type Report struct {
	DX, DY int8
	Button bool
}

// Tracker accumulates motion that has not yet been delivered to the host.
// The first successful sample becomes the origin.
type Tracker struct {
	unreported Point[int64]
	button     bool
	origin     Point[int16]
	hasOrigin  bool

	curve Curve
	scale int64
}

// NewTracker returns a tracker using curve (Linear(DefaultGain) when nil)
// and scale (DefaultScale when <= 0).
func NewTracker(curve Curve, scale int64) *Tracker {
	if curve == nil {
		curve = Linear(DefaultGain)
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Tracker{curve: curve, scale: scale}
}

// Ingest folds one sample into the unreported movement.
func (t *Tracker) Ingest(s Sample) {
	t.button = s.Button
	if !t.hasOrigin {
		t.origin = Point[int16]{X: s.X, Y: s.Y}
		t.hasOrigin = true
	}
	dx := int32(s.X) - int32(t.origin.X)
	dy := int32(s.Y) - int32(t.origin.Y)
	t.unreported.X += t.curve(dx)
	t.unreported.Y += t.curve(dy)
}

// Update reads one sample from src and ingests it. On a read error the
// tracker is left untouched and the error is returned.
func (t *Tracker) Update(src Source) error {
	s, err := src.ReadSample()
	if err != nil {
		return err
	}
	t.Ingest(s)
	return nil
}

// Report converts the unreported movement into deliverable deltas. The
// remainder below one report unit, and anything beyond the int8 range,
// stays in the tracker until Reconcile removes what was actually sent.
func (t *Tracker) Report() Report {
	return Report{
		DX:     t.delta(t.unreported.X),
		DY:     t.delta(t.unreported.Y),
		Button: t.button,
	}
}

func (t *Tracker) delta(v int64) int8 {
	return int8(mathx.Clamp(v/t.scale, math.MinInt8, math.MaxInt8))
}

// Reconcile subtracts a delivered report. Must be called after every
// successful send, and only then.
func (t *Tracker) Reconcile(dx, dy int8) {
	t.unreported.X -= int64(dx) * t.scale
	t.unreported.Y -= int64(dy) * t.scale
}

func (t *Tracker) Unreported() Point[int64] { return t.unreported }
func (t *Tracker) Button() bool             { return t.button }
func (t *Tracker) Scale() int64             { return t.scale }

// Origin returns the calibration point, if one has been captured.
func (t *Tracker) Origin() (Point[int16], bool) { return t.origin, t.hasOrigin }
