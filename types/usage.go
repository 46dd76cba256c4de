package types

// Keycode is a USB HID keyboard/keypad page (0x07) usage.
type Keycode uint8

// Keyboard usages used by the built-in layout.
const (
	KeyNoEvent Keycode = 0x00

	KeyA Keycode = 0x04
	KeyB Keycode = 0x05
	KeyC Keycode = 0x06
	KeyD Keycode = 0x07
	KeyE Keycode = 0x08
	KeyF Keycode = 0x09
	KeyG Keycode = 0x0A
	KeyH Keycode = 0x0B
	KeyI Keycode = 0x0C
	KeyJ Keycode = 0x0D
	KeyK Keycode = 0x0E
	KeyL Keycode = 0x0F
	KeyM Keycode = 0x10
	KeyN Keycode = 0x11
	KeyO Keycode = 0x12
	KeyP Keycode = 0x13
	KeyQ Keycode = 0x14
	KeyR Keycode = 0x15
	KeyS Keycode = 0x16
	KeyT Keycode = 0x17
	KeyU Keycode = 0x18
	KeyV Keycode = 0x19
	KeyW Keycode = 0x1A
	KeyX Keycode = 0x1B
	KeyY Keycode = 0x1C
	KeyZ Keycode = 0x1D

	Key1 Keycode = 0x1E
	Key2 Keycode = 0x1F
	Key3 Keycode = 0x20
	Key4 Keycode = 0x21
	Key5 Keycode = 0x22
	Key6 Keycode = 0x23
	Key7 Keycode = 0x24
	Key8 Keycode = 0x25
	Key9 Keycode = 0x26
	Key0 Keycode = 0x27

	KeyEnter        Keycode = 0x28
	KeyEscape       Keycode = 0x29
	KeyBackspace    Keycode = 0x2A
	KeyTab          Keycode = 0x2B
	KeySpace        Keycode = 0x2C
	KeyMinus        Keycode = 0x2D
	KeyEqual        Keycode = 0x2E
	KeyLeftBrace    Keycode = 0x2F
	KeyRightBrace   Keycode = 0x30
	KeyNonUSHash    Keycode = 0x32
	KeySemicolon    Keycode = 0x33
	KeyApostrophe   Keycode = 0x34
	KeyGrave        Keycode = 0x35
	KeyComma        Keycode = 0x36
	KeyDot          Keycode = 0x37
	KeySlash        Keycode = 0x38
	KeyCapsLock     Keycode = 0x39
	KeyF1           Keycode = 0x3A
	KeyF2           Keycode = 0x3B
	KeyF3           Keycode = 0x3C
	KeyF4           Keycode = 0x3D
	KeyF5           Keycode = 0x3E
	KeyF6           Keycode = 0x3F
	KeyF7           Keycode = 0x40
	KeyF8           Keycode = 0x41
	KeyF9           Keycode = 0x42
	KeyF10          Keycode = 0x43
	KeyF11          Keycode = 0x44
	KeyF12          Keycode = 0x45
	KeyHome         Keycode = 0x4A
	KeyPageUp       Keycode = 0x4B
	KeyDelete       Keycode = 0x4C
	KeyEnd          Keycode = 0x4D
	KeyPageDown     Keycode = 0x4E
	KeyRight        Keycode = 0x4F
	KeyLeft         Keycode = 0x50
	KeyDown         Keycode = 0x51
	KeyUp           Keycode = 0x52

	KeyNonUSBackslash Keycode = 0x64

	KeyLeftCtrl   Keycode = 0xE0
	KeyLeftShift  Keycode = 0xE1
	KeyLeftAlt    Keycode = 0xE2
	KeyLeftGUI    Keycode = 0xE3
	KeyRightCtrl  Keycode = 0xE4
	KeyRightShift Keycode = 0xE5
	KeyRightAlt   Keycode = 0xE6
	KeyRightGUI   Keycode = 0xE7
)

// IsModifier reports whether k is one of the eight modifier usages.
func (k Keycode) IsModifier() bool { return k >= KeyLeftCtrl && k <= KeyRightGUI }

// ModifierBit returns the boot-report modifier mask bit for k, or 0.
func (k Keycode) ModifierBit() uint8 {
	if !k.IsModifier() {
		return 0
	}
	return 1 << (k - KeyLeftCtrl)
}

// Consumer is a USB HID consumer page (0x0C) usage.
type Consumer uint16

const (
	ConsumerUnassigned Consumer = 0x0000
	ConsumerPlayPause  Consumer = 0x00CD
	ConsumerMute       Consumer = 0x00E2
	ConsumerVolumeUp   Consumer = 0x00E9
	ConsumerVolumeDown Consumer = 0x00EA
)

// MouseButton identifies a pointer button. Values are report bitmask bits.
type MouseButton uint8

const (
	ButtonLeft  MouseButton = 0x01
	ButtonRight MouseButton = 0x02
)
