// Package hid owns the host transport: report shaping, the critical section
// shared with the transport's interrupt context, and error classification.
package hid

import (
	"sync"

	"keymatrix-go/errcode"
	"keymatrix-go/types"
)

// Transport is the USB HID stack. Implementations return errcode.WouldBlock
// or errcode.Duplicate for writes that should simply be retried later; any
// other error is treated as a transport failure.
type Transport interface {
	// Poll services the bus. Called from the interrupt-style context.
	Poll() error
	// Tick advances the stack's internal timers; called every scan tick.
	Tick() error
	WriteKeyboard(r *types.KeyboardReport) error
	WriteConsumer(r *types.ConsumerReport) error
	WriteMouse(r *types.MouseReport) error
}

// Transient write outcomes.
const (
	ErrWouldBlock = errcode.WouldBlock
	ErrDuplicate  = errcode.Duplicate
)

// Endpoint serialises all access to a Transport. Every method holds the lock
// only for the duration of one transport call.
type Endpoint struct {
	mu sync.Mutex
	t  Transport

	lastConsumer types.ConsumerReport
	sentConsumer bool
}

func NewEndpoint(t Transport) *Endpoint {
	return &Endpoint{t: t}
}

func (e *Endpoint) Poll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return classify("hid.poll", e.t.Poll())
}

func (e *Endpoint) Tick() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return classify("hid.tick", e.t.Tick())
}

func (e *Endpoint) WriteKeyboard(r *types.KeyboardReport) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return classify("hid.keyboard", e.t.WriteKeyboard(r))
}

// WriteMouse returns nil only when the report was accepted; callers must
// reconcile pointer motion on nil and only on nil.
func (e *Endpoint) WriteMouse(r *types.MouseReport) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return classify("hid.mouse", e.t.WriteMouse(r))
}

// WriteConsumer suppresses a report identical to the last accepted one.
func (e *Endpoint) WriteConsumer(r *types.ConsumerReport) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sentConsumer && *r == e.lastConsumer {
		return ErrDuplicate
	}
	if err := classify("hid.consumer", e.t.WriteConsumer(r)); err != nil {
		return err
	}
	e.lastConsumer = *r
	e.sentConsumer = true
	return nil
}

func classify(op string, err error) error {
	if err == nil || errcode.IsTransient(err) {
		return err
	}
	return &errcode.E{C: errcode.Transport, Op: op, Err: err}
}
