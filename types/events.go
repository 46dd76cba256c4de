package types

// ModeEvent is published (retained) whenever pointer mode flips.
type ModeEvent struct {
	PointerMode bool
	Mouseness   uint64
}

// PressEvent is published once per scan tick in which at least one
// debounced press edge occurred.
type PressEvent struct {
	Count uint64 // monotonic press counter
}

// FaultEvent is published (retained) when the control loop halts.
type FaultEvent struct {
	Code string
	Msg  string
}
