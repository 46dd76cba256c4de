package keymap

import "keymatrix-go/types"

// Matrix geometry of the built-in layout.
const (
	Rows    = 6
	Columns = 17
)

// Default returns the built-in layout. Column 0 carries the "magic" keys,
// most of which are not wired.
func Default() Table {
	__, k := Nothing(), Key
	return Table{
		{__, k(types.KeyLeftCtrl), k(types.KeyLeftGUI), k(types.KeyLeftAlt), __, __, Dual(types.KeySpace, types.ButtonLeft), __, __, Dual(types.KeySpace, types.ButtonRight), __, k(types.KeyRightAlt), k(types.KeyRightGUI), k(types.KeyRightCtrl), k(types.KeyLeft), k(types.KeyDown), k(types.KeyRight)},
		{__, k(types.KeyLeftShift), k(types.KeyNonUSBackslash), k(types.KeyZ), k(types.KeyX), k(types.KeyC), k(types.KeyV), k(types.KeyB), k(types.KeyN), k(types.KeyM), k(types.KeyComma), k(types.KeyDot), k(types.KeySlash), __, k(types.KeyRightShift), k(types.KeyUp), k(types.KeyPageDown)},
		{__, k(types.KeyCapsLock), __, k(types.KeyA), k(types.KeyS), k(types.KeyD), k(types.KeyF), k(types.KeyG), k(types.KeyH), k(types.KeyJ), k(types.KeyK), k(types.KeyL), k(types.KeySemicolon), k(types.KeyApostrophe), k(types.KeyNonUSHash), __, k(types.KeyPageUp)},
		{__, k(types.KeyTab), __, k(types.KeyQ), k(types.KeyW), k(types.KeyE), k(types.KeyR), k(types.KeyT), k(types.KeyY), k(types.KeyU), k(types.KeyI), k(types.KeyO), k(types.KeyP), k(types.KeyLeftBrace), k(types.KeyRightBrace), k(types.KeyEnter), k(types.KeyEnd)},
		{Media(types.ConsumerMute), k(types.KeyGrave), k(types.Key1), k(types.Key2), k(types.Key3), k(types.Key4), k(types.Key5), k(types.Key6), k(types.Key7), k(types.Key8), k(types.Key9), k(types.Key0), k(types.KeyMinus), k(types.KeyEqual), __, k(types.KeyBackspace), k(types.KeyHome)},
		{__, k(types.KeyEscape), k(types.KeyF1), k(types.KeyF2), k(types.KeyF3), k(types.KeyF4), k(types.KeyF5), k(types.KeyF6), k(types.KeyF7), k(types.KeyF8), k(types.KeyF9), k(types.KeyF10), k(types.KeyF11), k(types.KeyF12), Media(types.ConsumerVolumeDown), Media(types.ConsumerVolumeUp), k(types.KeyDelete)},
	}
}
