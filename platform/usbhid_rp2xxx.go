//go:build rp2040 || rp2350

package platform

import (
	"machine/usb/hid/keyboard"
	"machine/usb/hid/mouse"

	"keymatrix-go/types"
)

// TinyGo keycode pages.
const (
	pageKey      = 0xF000
	pageModifier = 0xE000
	pageMedia    = 0xE400
)

type keyPort interface {
	Down(c keyboard.Keycode) error
	Up(c keyboard.Keycode) error
}

type mousePort interface {
	Move(vx, vy int)
	Press(b mouse.Button)
	Release(b mouse.Button)
}

// USBHID adapts TinyGo's composite HID stack to hid.Transport. TinyGo's
// devices are press/release based, so each write sends only the difference
// from the previous report.
type USBHID struct {
	kb keyPort
	ms mousePort

	keys     types.KeyboardReport
	consumer types.ConsumerReport
	buttons  uint8
}

func NewUSBHID() *USBHID {
	return &USBHID{kb: keyboard.Port(), ms: mouse.Port()}
}

// Poll is a no-op: TinyGo services USB from its own interrupt handler.
func (u *USBHID) Poll() error { return nil }
func (u *USBHID) Tick() error { return nil }

func (u *USBHID) WriteKeyboard(r *types.KeyboardReport) error {
	for bit := uint8(1); bit != 0; bit <<= 1 {
		was, is := u.keys.Modifiers&bit != 0, r.Modifiers&bit != 0
		if was == is {
			continue
		}
		if err := u.key(keyboard.Keycode(pageModifier|uint16(bit)), is); err != nil {
			return err
		}
	}
	for _, k := range u.keys.Codes() {
		if !contains(r.Codes(), k) {
			if err := u.key(keyboard.Keycode(pageKey|uint16(k)), false); err != nil {
				return err
			}
		}
	}
	for _, k := range r.Codes() {
		if !contains(u.keys.Codes(), k) {
			if err := u.key(keyboard.Keycode(pageKey|uint16(k)), true); err != nil {
				return err
			}
		}
	}
	u.keys = *r
	return nil
}

func (u *USBHID) WriteConsumer(r *types.ConsumerReport) error {
	for _, c := range u.consumer.Codes {
		if c != types.ConsumerUnassigned && !contains(r.Codes[:], c) {
			if err := u.key(keyboard.Keycode(pageMedia|uint16(c)), false); err != nil {
				return err
			}
		}
	}
	for _, c := range r.Codes {
		if c != types.ConsumerUnassigned && !contains(u.consumer.Codes[:], c) {
			if err := u.key(keyboard.Keycode(pageMedia|uint16(c)), true); err != nil {
				return err
			}
		}
	}
	u.consumer = *r
	return nil
}

func (u *USBHID) WriteMouse(r *types.MouseReport) error {
	if r.X != 0 || r.Y != 0 {
		u.ms.Move(int(r.X), int(r.Y))
	}
	for _, b := range [...]uint8{uint8(types.ButtonLeft), uint8(types.ButtonRight)} {
		was, is := u.buttons&b != 0, r.Buttons&b != 0
		switch {
		case is && !was:
			u.ms.Press(mouse.Button(b))
		case was && !is:
			u.ms.Release(mouse.Button(b))
		}
	}
	u.buttons = r.Buttons
	return nil
}

func (u *USBHID) key(c keyboard.Keycode, down bool) error {
	if down {
		return u.kb.Down(c)
	}
	return u.kb.Up(c)
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
