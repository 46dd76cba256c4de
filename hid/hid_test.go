//go:build !rp2040 && !rp2350

package hid

import (
	"errors"
	"sync"
	"testing"

	"keymatrix-go/errcode"
	"keymatrix-go/pointer"
	"keymatrix-go/types"
)

func TestClassifyWriteErrors(t *testing.T) {
	rec := &Recorder{}
	ep := NewEndpoint(rec)
	rep := &types.KeyboardReport{}

	rec.FailKeyboard(errcode.WouldBlock, errcode.Duplicate, errors.New("stall"))
	if err := ep.WriteKeyboard(rep); !errcode.IsTransient(err) {
		t.Fatalf("would-block: %v", err)
	}
	if err := ep.WriteKeyboard(rep); !errcode.IsTransient(err) {
		t.Fatalf("duplicate: %v", err)
	}
	err := ep.WriteKeyboard(rep)
	if errcode.Of(err) != errcode.Transport || !errcode.IsFatal(err) {
		t.Fatalf("stall: %v, want transport failure", err)
	}
	if err := ep.WriteKeyboard(rep); err != nil {
		t.Fatalf("recovered write: %v", err)
	}
	if n := len(rec.KeyboardReports()); n != 1 {
		t.Fatalf("recorded %d reports, want 1", n)
	}
}

func TestConsumerDuplicateSuppressed(t *testing.T) {
	rec := &Recorder{}
	ep := NewEndpoint(rec)
	var r types.ConsumerReport
	BuildConsumer(&r, []types.Consumer{types.ConsumerMute})

	if err := ep.WriteConsumer(&r); err != nil {
		t.Fatal(err)
	}
	if err := ep.WriteConsumer(&r); errcode.Of(err) != errcode.Duplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
	BuildConsumer(&r, nil)
	if err := ep.WriteConsumer(&r); err != nil {
		t.Fatal(err)
	}
	if n := len(rec.ConsumerReports()); n != 2 {
		t.Fatalf("recorded %d consumer reports, want 2", n)
	}
}

func TestConsumerRetriedAfterWouldBlock(t *testing.T) {
	rec := &Recorder{}
	ep := NewEndpoint(rec)
	var r types.ConsumerReport
	BuildConsumer(&r, []types.Consumer{types.ConsumerVolumeUp})
	rec.FailConsumer(errcode.WouldBlock)
	if err := ep.WriteConsumer(&r); errcode.Of(err) != errcode.WouldBlock {
		t.Fatalf("err = %v", err)
	}
	if err := ep.WriteConsumer(&r); err != nil {
		t.Fatalf("retry of an unsent report was suppressed: %v", err)
	}
}

func TestBuildKeyboard(t *testing.T) {
	var r types.KeyboardReport
	BuildKeyboard(&r, []types.Keycode{types.KeyA, types.KeyLeftShift, types.KeyRightGUI, types.KeyB})
	if r.Modifiers != 0x02|0x80 {
		t.Fatalf("modifiers = %#x", r.Modifiers)
	}
	if got := r.Codes(); len(got) != 2 || got[0] != types.KeyA || got[1] != types.KeyB {
		t.Fatalf("codes = %v", got)
	}
	BuildKeyboard(&r, nil)
	if r.N != 0 || r.Modifiers != 0 {
		t.Fatal("report not reset")
	}
}

func TestBuildConsumerTruncatesToSlots(t *testing.T) {
	var r types.ConsumerReport
	codes := []types.Consumer{1, 2, 3, 4, 5, 6}
	BuildConsumer(&r, codes)
	if r.Codes != [types.ConsumerReportCodes]types.Consumer{1, 2, 3, 4} {
		t.Fatalf("codes = %v", r.Codes)
	}
}

func TestBuildMouse(t *testing.T) {
	var m types.MouseReport
	BuildMouse(&m, pointer.Report{DX: -3, DY: 7, Button: true}, uint8(types.ButtonRight))
	if m.X != -3 || m.Y != 7 || m.Buttons != 0x03 {
		t.Fatalf("mouse = %+v", m)
	}
}

func TestEndpointSerialisesPollAndWrites(t *testing.T) {
	rec := &Recorder{}
	ep := NewEndpoint(rec)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = ep.Poll()
		}
	}()
	go func() {
		defer wg.Done()
		var m types.MouseReport
		for i := 0; i < 500; i++ {
			_ = ep.WriteMouse(&m)
			_ = ep.Tick()
		}
	}()
	wg.Wait()
	if rec.Polls() != 500 || rec.Ticks() != 500 || len(rec.MouseReports()) != 500 {
		t.Fatalf("polls=%d ticks=%d mouse=%d", rec.Polls(), rec.Ticks(), len(rec.MouseReports()))
	}
}

func TestRecorderFailuresAreOneShot(t *testing.T) {
	rec := &Recorder{}
	rec.FailTick(nil, errcode.WouldBlock)
	if err := rec.Tick(); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if err := rec.Tick(); err != errcode.WouldBlock {
		t.Fatalf("second tick: %v", err)
	}
	if err := rec.Tick(); err != nil {
		t.Fatalf("third tick: %v", err)
	}
	if rec.Ticks() != 3 || rec.Polls() != 0 {
		t.Fatalf("ticks=%d polls=%d", rec.Ticks(), rec.Polls())
	}
}
