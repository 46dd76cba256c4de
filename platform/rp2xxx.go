//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"keymatrix-go/config"
	"keymatrix-go/errcode"
)

// I2C configures the bus to the auxiliary MCU. GP26/GP27 belong to I2C1.
func I2C(p config.Pins) (drivers.I2C, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		Frequency: p.I2CHz,
		SDA:       machine.Pin(p.SDA),
		SCL:       machine.Pin(p.SCL),
	}); err != nil {
		return nil, &errcode.E{C: errcode.ConfigMismatch, Op: "platform.i2c", Err: err}
	}
	return bus, nil
}

// Console configures UART0 as the log sink.
func Console(p config.Pins) (io.Writer, error) {
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: p.ConsoleBaud,
		TX:       machine.Pin(p.ConsoleTX),
		RX:       machine.Pin(p.ConsoleRX),
	}); err != nil {
		return nil, &errcode.E{C: errcode.ConfigMismatch, Op: "platform.console", Err: err}
	}
	return u, nil
}

// DefaultPinFactory maps GP numbers directly to machine.Pin(n).
func DefaultPinFactory() PinFactory { return rp2PinFactory{} }

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (Pin, bool) {
	if n < 0 || n > maxGPIO {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }
