package keymatrix

import (
	"keymatrix-go/errcode"
	"keymatrix-go/keymap"
	"keymatrix-go/types"
)

// Capacities of the per-scan buffers. Well above what the physical
// switches can produce at once.
const (
	KeyCapacity      = 32
	ConsumerCapacity = 10
	ButtonCapacity   = 2
)

// Bounded is a fixed-capacity container. Its backing array is allocated once
// and never grows; Add past capacity fails instead of truncating. When
// unique is set, Add of a value already present is a no-op.
type Bounded[T comparable] struct {
	items  []T
	unique bool
}

func newBounded[T comparable](capacity int, unique bool) Bounded[T] {
	return Bounded[T]{items: make([]T, 0, capacity), unique: unique}
}

func (b *Bounded[T]) Add(v T) error {
	if b.unique && b.Contains(v) {
		return nil
	}
	if len(b.items) == cap(b.items) {
		return &errcode.E{C: errcode.CapacityExceeded, Op: "keymatrix.add"}
	}
	b.items = append(b.items, v)
	return nil
}

func (b *Bounded[T]) Contains(v T) bool {
	for _, x := range b.items {
		if x == v {
			return true
		}
	}
	return false
}

// All reports whether every element satisfies pred (true when empty).
func (b *Bounded[T]) All(pred func(T) bool) bool {
	for _, x := range b.items {
		if !pred(x) {
			return false
		}
	}
	return true
}

func (b *Bounded[T]) Len() int      { return len(b.items) }
func (b *Bounded[T]) Cap() int      { return cap(b.items) }
func (b *Bounded[T]) Items() []T    { return b.items }
func (b *Bounded[T]) Clear()        { b.items = b.items[:0] }
func (b *Bounded[T]) IsEmpty() bool { return len(b.items) == 0 }

type (
	KeySet       = Bounded[types.Keycode]
	ConsumerList = Bounded[types.Consumer]
	ButtonSet    = Bounded[types.MouseButton]
)

// Buffers is the result of one scan. Cleared at the start of every scan and
// read by the report logic before the next one.
type Buffers struct {
	Keys     KeySet
	Consumer ConsumerList
	Buttons  ButtonSet
}

func NewBuffers() *Buffers {
	return &Buffers{
		Keys:     newBounded[types.Keycode](KeyCapacity, true),
		Consumer: newBounded[types.Consumer](ConsumerCapacity, false),
		Buttons:  newBounded[types.MouseButton](ButtonCapacity, true),
	}
}

func (b *Buffers) Clear() {
	b.Keys.Clear()
	b.Consumer.Clear()
	b.Buttons.Clear()
}

// ButtonMask ORs the pressed pointer buttons into a report bitmask.
func (b *Buffers) ButtonMask() uint8 {
	var m uint8
	for _, btn := range b.Buttons.Items() {
		m |= uint8(btn)
	}
	return m
}

// Apply records what a pressed position produces.
func (b *Buffers) Apply(f keymap.Function, mouseMode bool) error {
	switch f.Kind {
	case keymap.KindNothing:
		return nil
	case keymap.KindKey:
		return b.addKey(f.Key)
	case keymap.KindMedia:
		if f.Media == types.ConsumerUnassigned {
			return nil
		}
		return b.Consumer.Add(f.Media)
	case keymap.KindMulti:
		for _, k := range f.Multi {
			if err := b.addKey(k); err != nil {
				return err
			}
		}
		return nil
	case keymap.KindDual:
		if mouseMode {
			return b.Buttons.Add(f.Button)
		}
		return b.addKey(f.Key)
	}
	return nil
}

func (b *Buffers) addKey(k types.Keycode) error {
	if k == types.KeyNoEvent {
		return nil
	}
	return b.Keys.Add(k)
}
