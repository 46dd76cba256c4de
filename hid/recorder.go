//go:build !rp2040 && !rp2350

package hid

import (
	"sync"

	"keymatrix-go/types"
)

// Recorder is an in-memory Transport for host builds and tests; firmware
// builds use the USB stack instead. Failures can be queued per report kind
// and each queued error is returned once.
type Recorder struct {
	mu sync.Mutex

	keyboard []types.KeyboardReport
	consumer []types.ConsumerReport
	mouse    []types.MouseReport
	ticks    int
	polls    int

	failKeyboard []error
	failConsumer []error
	failMouse    []error
	failTick     []error
}

func (r *Recorder) Poll() error {
	r.mu.Lock()
	r.polls++
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Tick() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	return pop(&r.failTick)
}

func (r *Recorder) WriteKeyboard(rep *types.KeyboardReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := pop(&r.failKeyboard); err != nil {
		return err
	}
	r.keyboard = append(r.keyboard, *rep)
	return nil
}

func (r *Recorder) WriteConsumer(rep *types.ConsumerReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := pop(&r.failConsumer); err != nil {
		return err
	}
	r.consumer = append(r.consumer, *rep)
	return nil
}

func (r *Recorder) WriteMouse(rep *types.MouseReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := pop(&r.failMouse); err != nil {
		return err
	}
	r.mouse = append(r.mouse, *rep)
	return nil
}

func (r *Recorder) FailKeyboard(errs ...error) { r.queue(&r.failKeyboard, errs) }
func (r *Recorder) FailConsumer(errs ...error) { r.queue(&r.failConsumer, errs) }
func (r *Recorder) FailMouse(errs ...error)    { r.queue(&r.failMouse, errs) }
func (r *Recorder) FailTick(errs ...error)     { r.queue(&r.failTick, errs) }

func (r *Recorder) queue(q *[]error, errs []error) {
	r.mu.Lock()
	*q = append(*q, errs...)
	r.mu.Unlock()
}

func (r *Recorder) KeyboardReports() []types.KeyboardReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.KeyboardReport(nil), r.keyboard...)
}

func (r *Recorder) ConsumerReports() []types.ConsumerReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ConsumerReport(nil), r.consumer...)
}

func (r *Recorder) MouseReports() []types.MouseReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.MouseReport(nil), r.mouse...)
}

func (r *Recorder) Ticks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

func (r *Recorder) Polls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.polls
}

func pop(q *[]error) error {
	if len(*q) == 0 {
		return nil
	}
	err := (*q)[0]
	*q = (*q)[1:]
	return err
}
