// Package keymap holds the static per-position function table of the switch
// matrix.
package keymap

import (
	"keymatrix-go/errcode"
	"keymatrix-go/types"
)

// Kind tags the variant carried by a Function.
type Kind uint8

const (
	KindNothing Kind = iota // unwired position
	KindKey                 // single keyboard usage
	KindMedia               // single consumer usage
	KindMulti               // several keyboard usages from one switch
	KindDual                // keyboard usage, or pointer button in pointer mode
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMedia:
		return "media"
	case KindMulti:
		return "multi"
	case KindDual:
		return "dual"
	default:
		return "nothing"
	}
}

// Function is what one matrix position produces. Only the fields relevant to
// Kind are meaningful; build values with the constructors below.
type Function struct {
	Kind   Kind
	Key    types.Keycode
	Media  types.Consumer
	Button types.MouseButton
	Multi  []types.Keycode
}

func Nothing() Function               { return Function{} }
func Key(k types.Keycode) Function    { return Function{Kind: KindKey, Key: k} }
func Media(c types.Consumer) Function { return Function{Kind: KindMedia, Media: c} }
func MultiKey(k ...types.Keycode) Function {
	return Function{Kind: KindMulti, Multi: k}
}
func Dual(k types.Keycode, b types.MouseButton) Function {
	return Function{Kind: KindDual, Key: k, Button: b}
}

// Table is a dense rows × columns grid of Functions.
type Table [][]Function

func (t Table) Rows() int { return len(t) }

// Cols returns the width of the first row; Validate guarantees all rows match.
func (t Table) Cols() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

func (t Table) At(row, col int) Function { return t[row][col] }

// Validate checks the table against the physical matrix geometry.
// Any disagreement is a fatal configuration error.
func (t Table) Validate(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return &errcode.E{C: errcode.ConfigMismatch, Op: "keymap.validate", Msg: "empty matrix"}
	}
	if len(t) != rows {
		return &errcode.E{C: errcode.ConfigMismatch, Op: "keymap.validate", Msg: "row count differs from row pins"}
	}
	for _, r := range t {
		if len(r) != cols {
			return &errcode.E{C: errcode.ConfigMismatch, Op: "keymap.validate", Msg: "column count differs from column pins"}
		}
	}
	return nil
}

// ModifierSet lists the keyboard usages that do not cancel pointer mode.
type ModifierSet []types.Keycode

func (m ModifierSet) Contains(k types.Keycode) bool {
	for _, x := range m {
		if x == k {
			return true
		}
	}
	return false
}

// MouseModifierKeys may be held while the pointer is moving, e.g. for
// ctrl-click or shift-click, without leaving pointer mode.
var MouseModifierKeys = ModifierSet{
	types.KeyLeftCtrl, types.KeyLeftShift, types.KeyLeftAlt, types.KeyLeftGUI,
	types.KeyRightCtrl, types.KeyRightShift, types.KeyRightAlt, types.KeyRightGUI,
}
