package hid

import (
	"keymatrix-go/pointer"
	"keymatrix-go/types"
)

// BuildKeyboard fills dst from a key set. Modifier usages become bits; all
// other usages occupy report slots in the order given.
func BuildKeyboard(dst *types.KeyboardReport, keys []types.Keycode) {
	*dst = types.KeyboardReport{}
	for _, k := range keys {
		if k.IsModifier() {
			dst.Modifiers |= k.ModifierBit()
			continue
		}
		if dst.N == len(dst.Keys) {
			break
		}
		dst.Keys[dst.N] = k
		dst.N++
	}
}

// BuildConsumer copies at most types.ConsumerReportCodes usages.
func BuildConsumer(dst *types.ConsumerReport, codes []types.Consumer) {
	*dst = types.ConsumerReport{}
	copy(dst.Codes[:], codes)
}

// BuildMouse combines the pointer delta, the joystick button (left) and the
// pointer buttons produced by dual keys.
func BuildMouse(dst *types.MouseReport, r pointer.Report, buttons uint8) {
	dst.X, dst.Y = r.DX, r.DY
	dst.Buttons = buttons
	if r.Button {
		dst.Buttons |= uint8(types.ButtonLeft)
	}
}
