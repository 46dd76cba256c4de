// Package logx is the process-wide structured logger. Records carry a
// component attribute so output from the control loop, the drivers and the
// services can be filtered apart.
package logx

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

const (
	ComponentKeyboard  Component = "keyboard"
	ComponentPointer   Component = "pointer"
	ComponentHID       Component = "hid"
	ComponentIndicator Component = "indicator"
	ComponentTelegram  Component = "telegram"
	ComponentConfig    Component = "config"
	ComponentSim       Component = "sim"
)

// Format selects the handler.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	mu     sync.RWMutex
	format Format
	logger *slog.Logger
)

var level = new(slog.LevelVar)

var out io.Writer = os.Stderr

func init() {
	level.Set(slog.LevelInfo)
	rebuild()
}

// rebuild must be called with mu held (or from init).
func rebuild() {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		logger = slog.New(slog.NewJSONHandler(out, opts))
	default:
		logger = slog.New(slog.NewTextHandler(out, opts))
	}
}

func SetLevel(l slog.Level) { level.Set(l) }
func Level() slog.Level     { return level.Level() }

// SetOutput redirects all logging, e.g. to the UART console on the MCU.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	rebuild()
}

func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	format = f
	rebuild()
}

// For returns a logger tagged with the given component.
func For(c Component) *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	return l.With("component", string(c))
}

func Debug(c Component, msg string, args ...any) { For(c).Debug(msg, args...) }
func Info(c Component, msg string, args ...any)  { For(c).Info(msg, args...) }
func Warn(c Component, msg string, args ...any)  { For(c).Warn(msg, args...) }
func Error(c Component, msg string, args ...any) { For(c).Error(msg, args...) }
