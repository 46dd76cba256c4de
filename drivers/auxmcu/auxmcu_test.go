package auxmcu

import (
	"errors"
	"testing"

	"keymatrix-go/errcode"
	"keymatrix-go/pointer"
)

type fakeBus struct {
	addr uint16
	w    []byte
	resp []byte
	err  error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.addr = addr
	b.w = append(b.w[:0], w...)
	if b.err != nil {
		return b.err
	}
	copy(r, b.resp)
	return nil
}

func TestReadSample(t *testing.T) {
	bus := &fakeBus{resp: []byte{0x01, 0x00, 0x00, 0x10, 0x01}}
	d := New(bus)
	s, err := d.ReadSample()
	if err != nil {
		t.Fatal(err)
	}
	if want := (pointer.Sample{X: -16, Y: 256, Button: true}); s != want {
		t.Fatalf("sample = %+v, want %+v", s, want)
	}
	if bus.addr != Address || len(bus.w) != 0 {
		t.Fatalf("tx addr=%#x w=%v", bus.addr, bus.w)
	}
}

func TestReadFailureIsTransient(t *testing.T) {
	cause := errors.New("nack")
	d := New(&fakeBus{err: cause})
	_, err := d.ReadSample()
	if !errcode.IsTransient(err) || !errors.Is(err, cause) {
		t.Fatalf("err = %v", err)
	}
}

func TestSendCount(t *testing.T) {
	bus := &fakeBus{}
	d := New(bus)
	d.Configure(Config{Address: 0x09})
	if err := d.SendCount(12045); err != nil {
		t.Fatal(err)
	}
	if string(bus.w) != "12045" || bus.addr != 0x09 {
		t.Fatalf("wrote %q to %#x", bus.w, bus.addr)
	}
	if err := d.SendCount(0); err != nil || string(bus.w) != "0" {
		t.Fatalf("zero: %q %v", bus.w, err)
	}
}
