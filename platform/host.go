//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"tinygo.org/x/drivers"

	"keymatrix-go/config"
	"keymatrix-go/keymatrix"
)

// Transaction is one recorded I2C exchange.
type Transaction struct {
	Addr  uint16
	Write []byte
	ReadN int
}

// HostI2C implements drivers.I2C from a script: each transaction consumes the
// next scripted error, then the next queued response if it reads. Reads with
// nothing queued return zeros.
type HostI2C struct {
	mu      sync.Mutex
	replies [][]byte
	faults  []error
	written [][]byte
	last    Transaction
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = Transaction{Addr: addr, Write: slices.Clone(w), ReadN: len(r)}
	if len(h.faults) > 0 {
		fault := h.faults[0]
		h.faults = h.faults[1:]
		if fault != nil {
			return fault
		}
	}
	if len(w) != 0 {
		h.written = append(h.written, slices.Clone(w))
	}
	if len(r) == 0 {
		return nil
	}
	clear(r)
	if len(h.replies) != 0 {
		copy(r, h.replies[0])
		h.replies = h.replies[1:]
	}
	return nil
}

// QueueRead adds a response for a future read.
func (h *HostI2C) QueueRead(b []byte) {
	h.mu.Lock()
	h.replies = append(h.replies, slices.Clone(b))
	h.mu.Unlock()
}

// QueueErr scripts the outcome of upcoming transactions. A nil entry lets one
// transaction through, so failures can be interleaved with successes.
func (h *HostI2C) QueueErr(errs ...error) {
	h.mu.Lock()
	h.faults = append(h.faults, errs...)
	h.mu.Unlock()
}

// Writes returns every payload written so far.
func (h *HostI2C) Writes() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.written)
}

// Last returns the most recent transaction, failed or not.
func (h *HostI2C) Last() Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// I2C returns an inert host bus; the configuration is ignored.
func I2C(config.Pins) (drivers.I2C, error) { return &HostI2C{}, nil }

// Console returns stderr.
func Console(config.Pins) (io.Writer, error) { return os.Stderr, nil }

// FakePin records how it was configured and holds a level.
type FakePin struct {
	number int
	output atomic.Bool
	high   atomic.Bool
	pull   Pull
}

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.output.Store(false)
	p.pull = pull
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.output.Store(true)
	p.high.Store(initial)
	return nil
}

func (p *FakePin) Set(level bool) { p.high.Store(level) }
func (p *FakePin) Get() bool      { return p.high.Load() }
func (p *FakePin) IsOutput() bool { return p.output.Load() }
func (p *FakePin) Number() int    { return p.number }

// HostPinFactory hands out one FakePin per GPIO number, created on first use.
type HostPinFactory struct {
	mu    sync.Mutex
	byNum map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (Pin, bool) {
	if n < 0 || n > maxGPIO {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byNum == nil {
		f.byNum = map[int]*FakePin{}
	}
	if _, seen := f.byNum[n]; !seen {
		f.byNum[n] = &FakePin{number: n}
	}
	return f.byNum[n], true
}

// Get returns a pin previously handed out by ByNumber.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byNum[n]
	return p, ok
}

func DefaultPinFactory() PinFactory { return &HostPinFactory{} }

// Matrix emulates the switch matrix: a column reads high while the driven
// row has a closed switch on it.
type Matrix struct {
	mu     sync.RWMutex
	driven []bool
	closed [][]bool
}

func NewMatrix(rows, cols int) *Matrix {
	m := &Matrix{driven: make([]bool, rows), closed: make([][]bool, rows)}
	for r := range m.closed {
		m.closed[r] = make([]bool, cols)
	}
	return m
}

// SetKey opens or closes the switch at (row, col).
func (m *Matrix) SetKey(row, col int, closed bool) {
	m.mu.Lock()
	m.closed[row][col] = closed
	m.mu.Unlock()
}

// ReleaseAll opens every switch.
func (m *Matrix) ReleaseAll() {
	m.mu.Lock()
	for r := range m.closed {
		clear(m.closed[r])
	}
	m.mu.Unlock()
}

func (m *Matrix) RowPins() []keymatrix.OutputPin {
	out := make([]keymatrix.OutputPin, len(m.driven))
	for r := range out {
		out[r] = matrixRow{m: m, r: r}
	}
	return out
}

func (m *Matrix) ColumnPins() []keymatrix.InputPin {
	n := 0
	if len(m.closed) > 0 {
		n = len(m.closed[0])
	}
	out := make([]keymatrix.InputPin, n)
	for c := range out {
		out[c] = matrixCol{m: m, c: c}
	}
	return out
}

// Driven reports whether a row is currently driven high.
func (m *Matrix) Driven(row int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.driven[row]
}

type matrixRow struct {
	m *Matrix
	r int
}

func (p matrixRow) Set(level bool) {
	p.m.mu.Lock()
	p.m.driven[p.r] = level
	p.m.mu.Unlock()
}

type matrixCol struct {
	m *Matrix
	c int
}

func (p matrixCol) Get() bool {
	p.m.mu.RLock()
	defer p.m.mu.RUnlock()
	for r, on := range p.m.driven {
		if on && p.m.closed[r][p.c] {
			return true
		}
	}
	return false
}
