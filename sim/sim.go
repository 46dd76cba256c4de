//go:build !(rp2040 || rp2350)

package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"keymatrix-go/bus"
	"keymatrix-go/drivers/auxmcu"
	"keymatrix-go/errcode"
	"keymatrix-go/keymap"
	"keymatrix-go/platform"
	"keymatrix-go/pointer"
	"keymatrix-go/services/keyboard"
	"keymatrix-go/types"
	"keymatrix-go/x/logx"
	"keymatrix-go/x/mathx"
)

// Event kinds.
const (
	KindKeyboard = "keyboard"
	KindConsumer = "consumer"
	KindMouse    = "mouse"
	KindTelegram = "telegram"
	KindMode     = "mode"
	KindFault    = "fault"
)

type Event struct {
	Tick   uint64
	Kind   string
	Detail string
}

func (e Event) String() string {
	return fmt.Sprintf("tick %6d  %-8s  %s", e.Tick, e.Kind, e.Detail)
}

type Result struct {
	Name    string
	Events  []Event
	Presses uint64
	Mode    string
	Fault   error
}

// Count returns the number of events of kind.
func (r *Result) Count(kind string) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type runner struct {
	s   *Scenario
	out io.Writer
	now uint64
	res *Result
}

func (r *runner) emit(kind, detail string) {
	e := Event{Tick: r.now, Kind: kind, Detail: detail}
	r.res.Events = append(r.res.Events, e)
	if r.out != nil {
		fmt.Fprintln(r.out, e)
	}
}

// Run replays s against a fresh controller. Every event is also written to
// out when out is non-nil. A fatal controller error ends the run early and
// is reported in Result.Fault, not as the returned error.
func Run(s *Scenario, out io.Writer) (*Result, error) {
	log := logx.For(logx.ComponentSim)
	r := &runner{s: s, out: out, res: &Result{Name: s.Name}}

	m := platform.NewMatrix(keymap.Rows, keymap.Columns)
	b := bus.NewBus(16)
	modes := b.NewConnection("sim").Subscribe(keyboard.TopicMode)
	aux := auxmcu.New(&stickBus{r: r, addr: s.Firmware.AuxAddress})
	aux.Configure(auxmcu.Config{Address: s.Firmware.AuxAddress})

	c, err := keyboard.New(s.Firmware, keyboard.Deps{
		Rows:      m.RowPins(),
		Columns:   m.ColumnPins(),
		Pointer:   aux,
		Telegram:  aux,
		Transport: &transport{r: r},
		Bus:       b,
		Settle:    func() {},
	})
	if err != nil {
		return nil, err
	}

	log.Info("scenario started", "name", s.Name, "ticks", s.Ticks)
	for r.now = 1; r.now <= s.Ticks; r.now++ {
		for row := 0; row < keymap.Rows; row++ {
			for col := 0; col < keymap.Columns; col++ {
				m.SetKey(row, col, s.closed(row, col, r.now))
			}
		}
		err := c.Step()
		r.drainModes(modes)
		if err != nil {
			c.Fault(err)
			r.res.Fault = err
			r.emit(KindFault, err.Error())
			break
		}
	}
	r.res.Presses = c.Presses()
	r.res.Mode = c.Mode().String()
	log.Info("scenario finished", "name", s.Name, "events", len(r.res.Events), "presses", r.res.Presses)
	return r.res, nil
}

func (r *runner) drainModes(sub *bus.Subscription) {
	for {
		select {
		case msg := <-sub.Channel():
			if ev, ok := msg.Payload.(types.ModeEvent); ok {
				name := "keyboard"
				if ev.PointerMode {
					name = "pointer"
				}
				r.emit(KindMode, fmt.Sprintf("%s mouseness=%d", name, ev.Mouseness))
			}
		default:
			return
		}
	}
}

// ----------------------------- joystick + telegram ---------------------------

// stickBus answers the auxiliary MCU's I2C transactions from the scenario.
type stickBus struct {
	r    *runner
	addr uint16
}

func (b *stickBus) Tx(addr uint16, w, rd []byte) error {
	if addr != b.addr {
		return errors.New("nak")
	}
	if len(w) > 0 {
		b.r.emit(KindTelegram, string(w))
	}
	if len(rd) >= pointer.SampleSize {
		encodeStick(rd, b.r.s.stick(b.r.now))
	}
	return nil
}

// encodeStick writes m in the auxiliary MCU's wire layout. X goes out negated
// since the decoder negates it back.
func encodeStick(rd []byte, m Motion) {
	binary.BigEndian.PutUint16(rd[0:2], uint16(m.Y))
	binary.BigEndian.PutUint16(rd[2:4], uint16(mathx.Neg(m.X)))
	rd[4] = 0
	if m.Button {
		rd[4] = 1
	}
}

// ----------------------------- HID transport ---------------------------------

type transport struct {
	r *runner

	keyboard types.KeyboardReport
	buttons  uint8
}

func (t *transport) fail(report string) error {
	for _, f := range t.r.s.Failures {
		if f.Tick != t.r.now || f.Report != report {
			continue
		}
		switch f.Code {
		case string(errcode.WouldBlock):
			return errcode.WouldBlock
		case string(errcode.Duplicate):
			return errcode.Duplicate
		default:
			return errors.New(f.Code)
		}
	}
	return nil
}

func (t *transport) Poll() error { return nil }
func (t *transport) Tick() error { return t.fail("tick") }

func (t *transport) WriteKeyboard(rep *types.KeyboardReport) error {
	if err := t.fail(KindKeyboard); err != nil {
		return err
	}
	if *rep != t.keyboard {
		t.keyboard = *rep
		var sb strings.Builder
		fmt.Fprintf(&sb, "mods=0x%02x keys=[", rep.Modifiers)
		for i, k := range rep.Codes() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "0x%02x", uint8(k))
		}
		sb.WriteByte(']')
		t.r.emit(KindKeyboard, sb.String())
	}
	return nil
}

func (t *transport) WriteConsumer(rep *types.ConsumerReport) error {
	if err := t.fail(KindConsumer); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString("codes=[")
	for i, c := range rep.Codes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%04x", uint16(c))
	}
	sb.WriteByte(']')
	t.r.emit(KindConsumer, sb.String())
	return nil
}

func (t *transport) WriteMouse(rep *types.MouseReport) error {
	if err := t.fail(KindMouse); err != nil {
		return err
	}
	if rep.X != 0 || rep.Y != 0 || rep.Buttons != t.buttons {
		t.buttons = rep.Buttons
		t.r.emit(KindMouse, fmt.Sprintf("dx=%d dy=%d buttons=0x%02x", rep.X, rep.Y, rep.Buttons))
	}
	return nil
}
