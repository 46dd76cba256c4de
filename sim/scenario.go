//go:build !(rp2040 || rp2350)

// Package sim replays a scripted session against the real control loop on
// the host: switch closures and joystick positions go in, HID reports and
// press telegrams come out.
package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"keymatrix-go/config"
	"keymatrix-go/keymap"
)

// Press holds the switch at (Row, Col) closed for ticks [From, To).
type Press struct {
	Row  int    `toml:"row" yaml:"row"`
	Col  int    `toml:"col" yaml:"col"`
	From uint64 `toml:"from" yaml:"from"`
	To   uint64 `toml:"to" yaml:"to"`
}

// Motion holds the joystick at (X, Y) for ticks [From, To). Outside every
// motion the stick rests at (0, 0).
type Motion struct {
	X      int16  `toml:"x" yaml:"x"`
	Y      int16  `toml:"y" yaml:"y"`
	Button bool   `toml:"button" yaml:"button"`
	From   uint64 `toml:"from" yaml:"from"`
	To     uint64 `toml:"to" yaml:"to"`
}

// Failure makes one transport call fail at Tick.
type Failure struct {
	Tick   uint64 `toml:"tick" yaml:"tick"`
	Report string `toml:"report" yaml:"report"` // tick, keyboard, mouse, consumer
	Code   string `toml:"code" yaml:"code"`     // would_block, duplicate, anything else is fatal
}

type Scenario struct {
	Name     string          `toml:"name" yaml:"name"`
	Ticks    uint64          `toml:"ticks" yaml:"ticks"`
	Firmware config.Firmware `toml:"firmware" yaml:"firmware"`
	Presses  []Press         `toml:"press" yaml:"press"`
	Pointer  []Motion        `toml:"pointer" yaml:"pointer"`
	Failures []Failure       `toml:"fail" yaml:"fail"`
}

// LoadScenario reads a .toml, .yaml or .yml scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := ParseScenario(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScenario decodes data over a scenario holding the default firmware
// configuration, then validates it.
func ParseScenario(data []byte, ext string) (*Scenario, error) {
	s := &Scenario{Firmware: config.Default()}
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("parse TOML scenario: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse YAML scenario: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	if s.Ticks == 0 {
		return fmt.Errorf("scenario: ticks must be positive")
	}
	if err := s.Firmware.Validate(); err != nil {
		return fmt.Errorf("scenario firmware: %w", err)
	}
	for i, p := range s.Presses {
		if p.Row < 0 || p.Row >= keymap.Rows || p.Col < 0 || p.Col >= keymap.Columns {
			return fmt.Errorf("press %d: position (%d,%d) outside the matrix", i, p.Row, p.Col)
		}
		if p.From >= p.To {
			return fmt.Errorf("press %d: empty tick range", i)
		}
	}
	for i, m := range s.Pointer {
		if m.From >= m.To {
			return fmt.Errorf("pointer %d: empty tick range", i)
		}
	}
	for i, f := range s.Failures {
		switch f.Report {
		case "tick", "keyboard", "mouse", "consumer":
		default:
			return fmt.Errorf("fail %d: unknown report %q", i, f.Report)
		}
	}
	return nil
}

func (s *Scenario) closed(row, col int, tick uint64) bool {
	for _, p := range s.Presses {
		if p.Row == row && p.Col == col && tick >= p.From && tick < p.To {
			return true
		}
	}
	return false
}

func (s *Scenario) stick(tick uint64) Motion {
	for _, m := range s.Pointer {
		if tick >= m.From && tick < m.To {
			return m
		}
	}
	return Motion{}
}
