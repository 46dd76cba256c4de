// Package config holds the firmware tunables. The defaults are compiled in;
// host tools may overlay a TOML or YAML file (see Load).
package config

import (
	"time"

	"keymatrix-go/drivers/auxmcu"
	"keymatrix-go/errcode"
	"keymatrix-go/keymatrix"
	"keymatrix-go/mode"
	"keymatrix-go/pointer"
	"keymatrix-go/x/mathx"
)

// Debounce strategies.
const (
	DebounceHysteresis = "hysteresis"
	DebounceCooldown   = "cooldown"
)

// Pointer transfer curves.
const (
	CurveLinear    = "linear"
	CurveQuadratic = "quadratic"
)

// Pins is the board wiring, in GP numbers.
type Pins struct {
	Rows    []int  `toml:"rows" yaml:"rows"`
	Columns []int  `toml:"columns" yaml:"columns"`
	LED     int    `toml:"led" yaml:"led"`
	SDA     int    `toml:"sda" yaml:"sda"`
	SCL     int    `toml:"scl" yaml:"scl"`
	I2CHz   uint32 `toml:"i2c_hz" yaml:"i2c_hz"`

	// UART0 log console.
	ConsoleTX   int    `toml:"console_tx" yaml:"console_tx"`
	ConsoleRX   int    `toml:"console_rx" yaml:"console_rx"`
	ConsoleBaud uint32 `toml:"console_baud" yaml:"console_baud"`
}

// Firmware is the complete set of tunables.
type Firmware struct {
	// Cadences. The scan period is the base tick; the others are rounded up
	// to whole scan ticks.
	ScanPeriod     time.Duration `toml:"scan_period" yaml:"scan_period"`
	KeyboardPeriod time.Duration `toml:"keyboard_period" yaml:"keyboard_period"`
	ConsumerPeriod time.Duration `toml:"consumer_period" yaml:"consumer_period"`
	LoopPoll       time.Duration `toml:"loop_poll" yaml:"loop_poll"`
	Settle         time.Duration `toml:"settle" yaml:"settle"`

	Debounce      string `toml:"debounce" yaml:"debounce"`
	CooldownTicks uint16 `toml:"cooldown_ticks" yaml:"cooldown_ticks"`

	PointerCurve  string        `toml:"pointer_curve" yaml:"pointer_curve"`
	PointerGain   int64         `toml:"pointer_gain" yaml:"pointer_gain"`
	PointerScale  int64         `toml:"pointer_scale" yaml:"pointer_scale"`
	PointerWarmup time.Duration `toml:"pointer_warmup" yaml:"pointer_warmup"`

	MousenessThreshold uint64 `toml:"mouseness_threshold" yaml:"mouseness_threshold"`

	AuxAddress    uint16 `toml:"aux_address" yaml:"aux_address"`
	PressTelegram bool   `toml:"press_telegram" yaml:"press_telegram"`

	Pins Pins `toml:"pins" yaml:"pins"`
}

// Default returns the configuration of the reference board.
func Default() Firmware {
	return Firmware{
		ScanPeriod:     time.Millisecond,
		KeyboardPeriod: 10 * time.Millisecond,
		ConsumerPeriod: 50 * time.Millisecond,
		LoopPoll:       100 * time.Microsecond,
		Settle:         keymatrix.DefaultSettle,

		Debounce:      DebounceHysteresis,
		CooldownTicks: keymatrix.DefaultCooldownTicks,

		PointerCurve:  CurveLinear,
		PointerGain:   pointer.DefaultGain,
		PointerScale:  pointer.DefaultScale,
		PointerWarmup: auxmcu.DefaultWarmup,

		MousenessThreshold: mode.DefaultThreshold,

		AuxAddress:    auxmcu.Address,
		PressTelegram: true,

		Pins: Pins{
			Rows:    []int{17, 18, 19, 20, 21, 22},
			Columns: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
			LED:     25,
			SDA:     26,
			SCL:     27,
			I2CHz:   100_000,

			ConsoleTX:   28,
			ConsoleRX:   29,
			ConsoleBaud: 115_200,
		},
	}
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "config.validate", Msg: msg}
}

// Validate rejects values the control loop cannot run with.
func (f *Firmware) Validate() error {
	switch {
	case f.ScanPeriod <= 0:
		return invalid("scan_period must be positive")
	case f.KeyboardPeriod < f.ScanPeriod:
		return invalid("keyboard_period shorter than scan_period")
	case f.ConsumerPeriod < f.ScanPeriod:
		return invalid("consumer_period shorter than scan_period")
	case f.LoopPoll <= 0 || f.LoopPoll > f.ScanPeriod:
		return invalid("loop_poll must be in (0, scan_period]")
	case f.Settle < 0:
		return invalid("settle must not be negative")
	case f.PointerWarmup < 0:
		return invalid("pointer_warmup must not be negative")
	case f.PointerGain <= 0:
		return invalid("pointer_gain must be positive")
	case f.PointerScale <= 0:
		return invalid("pointer_scale must be positive")
	case f.MousenessThreshold == 0:
		return invalid("mouseness_threshold must be positive")
	case f.AuxAddress == 0 || f.AuxAddress > 0x7F:
		return invalid("aux_address must be a 7-bit I2C address")
	}
	switch f.Debounce {
	case DebounceHysteresis:
	case DebounceCooldown:
		if f.CooldownTicks == 0 {
			return invalid("cooldown_ticks must be positive")
		}
	default:
		return invalid("unknown debounce strategy " + f.Debounce)
	}
	switch f.PointerCurve {
	case CurveLinear, CurveQuadratic:
	default:
		return invalid("unknown pointer curve " + f.PointerCurve)
	}
	return f.Pins.validate()
}

func (p *Pins) validate() error {
	if len(p.Rows) == 0 || len(p.Columns) == 0 {
		return invalid("matrix pins missing")
	}
	if p.I2CHz == 0 {
		return invalid("i2c_hz must be positive")
	}
	all := make([]int, 0, len(p.Rows)+len(p.Columns)+5)
	all = append(all, p.Rows...)
	all = append(all, p.Columns...)
	all = append(all, p.LED, p.SDA, p.SCL, p.ConsoleTX, p.ConsoleRX)
	seen := make(map[int]bool, len(all))
	for _, n := range all {
		if n < 0 || n > 29 {
			return invalid("pin out of range")
		}
		if seen[n] {
			return invalid("pin used twice")
		}
		seen[n] = true
	}
	return nil
}

// Ticks converts a period into whole scan ticks (at least one).
func (f *Firmware) Ticks(d time.Duration) uint64 {
	if f.ScanPeriod <= 0 || d <= 0 {
		return 1
	}
	return max(1, mathx.CeilDiv(uint64(d), uint64(f.ScanPeriod)))
}
