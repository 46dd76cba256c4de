// Package platform brings up the board: matrix pins, the indicator LED, the
// I2C bus to the auxiliary MCU and the log console. Host builds get fakes
// with the same shape.
package platform

import (
	"tinygo.org/x/drivers"

	"keymatrix-go/config"
	"keymatrix-go/errcode"
	"keymatrix-go/keymatrix"
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is one GPIO line.
type Pin interface {
	ConfigureInput(Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// maxGPIO is the highest user GPIO on the RP2040 (GP0..GP29).
const maxGPIO = 29

// PinFactory maps GP numbers to pins.
type PinFactory interface {
	ByNumber(n int) (Pin, bool)
}

// Board is the configured hardware the controller runs on.
type Board struct {
	Rows    []keymatrix.OutputPin
	Columns []keymatrix.InputPin
	LED     Pin
	I2C     drivers.I2C
}

// Setup configures the matrix rows as outputs driven low, the columns as
// pulled-down inputs and the LED as an output that starts off.
func Setup(f PinFactory, i2c drivers.I2C, p config.Pins) (*Board, error) {
	b := &Board{
		Rows:    make([]keymatrix.OutputPin, 0, len(p.Rows)),
		Columns: make([]keymatrix.InputPin, 0, len(p.Columns)),
		I2C:     i2c,
	}
	for _, n := range p.Rows {
		pin, err := claim(f, n)
		if err != nil {
			return nil, err
		}
		if err := pin.ConfigureOutput(false); err != nil {
			return nil, err
		}
		b.Rows = append(b.Rows, pin)
	}
	for _, n := range p.Columns {
		pin, err := claim(f, n)
		if err != nil {
			return nil, err
		}
		if err := pin.ConfigureInput(PullDown); err != nil {
			return nil, err
		}
		b.Columns = append(b.Columns, pin)
	}
	led, err := claim(f, p.LED)
	if err != nil {
		return nil, err
	}
	if err := led.ConfigureOutput(false); err != nil {
		return nil, err
	}
	b.LED = led
	return b, nil
}

func claim(f PinFactory, n int) (Pin, error) {
	pin, ok := f.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.ConfigMismatch, Op: "platform.setup", Msg: "no such pin"}
	}
	return pin, nil
}
