// Package auxmcu drives the auxiliary microcontroller that digitises the
// joystick and shows the key-press counter.
//
// Reads return a fixed 5-byte record (see pointer.DecodeSample). Writes are
// plain ASCII telegrams. Both use the same I2C address.
//
// The driver does not retry: a failed transaction means "no sample this
// tick" and is reported as errcode.Transient so the caller simply moves on.
package auxmcu

import (
	"time"

	"tinygo.org/x/drivers"

	"keymatrix-go/errcode"
	"keymatrix-go/pointer"
	"keymatrix-go/x/conv"
)

// I2C address.
const Address = 0x08

// DefaultWarmup is how long after boot the joystick reading is garbage.
const DefaultWarmup = 500 * time.Millisecond

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x08 if zero.
	Address uint16
}

// Device wraps an I2C connection to the auxiliary MCU.
type Device struct {
	bus     drivers.I2C
	Address uint16

	rx [pointer.SampleSize]byte
	tx [conv.MaxUint64Digits]byte
}

// New creates a Device. The I2C bus must already be configured; nothing is
// sent to the peripheral.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address}
}

func (d *Device) Configure(cfg Config) {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
}

// ReadSample fetches one joystick sample.
func (d *Device) ReadSample() (pointer.Sample, error) {
	if err := d.bus.Tx(d.Address, nil, d.rx[:]); err != nil {
		return pointer.Sample{}, &errcode.E{C: errcode.Transient, Op: "auxmcu.read", Err: err}
	}
	return pointer.DecodeSample(d.rx), nil
}

// SendCount writes n as decimal ASCII.
func (d *Device) SendCount(n uint64) error {
	if err := d.bus.Tx(d.Address, conv.Utoa(d.tx[:], n), nil); err != nil {
		return &errcode.E{C: errcode.Transient, Op: "auxmcu.write", Err: err}
	}
	return nil
}
