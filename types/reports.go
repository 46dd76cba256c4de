package types

// KeyboardReportKeys bounds the number of simultaneous non-modifier usages
// carried in one keyboard report.
const KeyboardReportKeys = 32

// ConsumerReportCodes is the number of slots in a consumer report.
const ConsumerReportCodes = 4

// KeyboardReport is the host-facing key set. Modifiers live only in the
// Modifiers bitmap; Keys holds the remaining usages.
type KeyboardReport struct {
	Modifiers uint8
	Keys      [KeyboardReportKeys]Keycode
	N         int
}

// Codes returns the populated usages.
func (r *KeyboardReport) Codes() []Keycode { return r.Keys[:r.N] }

// ConsumerReport carries up to ConsumerReportCodes media usages; unused
// slots are ConsumerUnassigned.
type ConsumerReport struct {
	Codes [ConsumerReportCodes]Consumer
}

// MouseReport is a relative pointer report.
type MouseReport struct {
	Buttons uint8
	X, Y    int8
}
