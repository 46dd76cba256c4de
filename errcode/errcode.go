package errcode

import "errors"

// Code is a stable error identifier. Codes compare with == and are errors
// themselves, so a bare Code can be returned without allocating.
type Code string

func (c Code) Error() string { return string(c) }

// Codes used across the firmware.
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"

	// Recovered locally: skip this cycle, retry on the next one.
	Transient  Code = "transient"
	WouldBlock Code = "would_block"
	Duplicate  Code = "duplicate"

	// Fatal: the control loop stops and the fault indicator takes over.
	ConfigMismatch   Code = "config_mismatch"
	CapacityExceeded Code = "capacity_exceeded"
	Transport        Code = "transport_failure"

	Error Code = "error" // generic fallback
)

// E keeps context and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E. A nil cause is allowed.
func Wrap(c Code, op string, err error) *E {
	return &E{C: c, Op: op, Err: err}
}

type coder interface{ Code() Code }

// Of extracts the outermost Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch x := e.(type) {
		case Code:
			return x
		case coder:
			return x.Code()
		}
	}
	return Error
}

// IsTransient reports whether err should only cost the current cycle.
func IsTransient(err error) bool {
	switch Of(err) {
	case Transient, WouldBlock, Duplicate:
		return true
	}
	return false
}

// IsFatal reports whether err must halt normal operation.
func IsFatal(err error) bool {
	return err != nil && !IsTransient(err)
}
