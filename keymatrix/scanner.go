package keymatrix

import (
	"time"

	"keymatrix-go/errcode"
	"keymatrix-go/keymap"
)

// OutputPin drives one row line.
type OutputPin interface {
	Set(level bool)
}

// InputPin samples one column line.
type InputPin interface {
	Get() bool
}

// DefaultSettle is the minimum time a row is driven before columns are read.
const DefaultSettle = time.Microsecond

// Config wires a Scanner. Filters and Settle are optional.
type Config struct {
	Rows    []OutputPin
	Columns []InputPin
	Table   keymap.Table
	Filters [][]Filter // defaults to one DebounceState per position
	Settle  func()     // defaults to sleeping DefaultSettle
}

// Scanner owns the matrix pins and per-position filters.
type Scanner struct {
	rows    []OutputPin
	cols    []InputPin
	table   keymap.Table
	filters [][]Filter
	settle  func()
}

// New validates the geometry of pins, table and filters. Any mismatch is a
// fatal configuration error.
func New(cfg Config) (*Scanner, error) {
	if err := cfg.Table.Validate(len(cfg.Rows), len(cfg.Columns)); err != nil {
		return nil, err
	}
	filters := cfg.Filters
	if filters == nil {
		filters = NewFilters(len(cfg.Rows), len(cfg.Columns), StrategyHysteresis, 0)
	}
	if len(filters) != len(cfg.Rows) {
		return nil, &errcode.E{C: errcode.ConfigMismatch, Op: "keymatrix.new", Msg: "filter rows differ from row pins"}
	}
	for _, r := range filters {
		if len(r) != len(cfg.Columns) {
			return nil, &errcode.E{C: errcode.ConfigMismatch, Op: "keymatrix.new", Msg: "filter columns differ from column pins"}
		}
	}
	settle := cfg.Settle
	if settle == nil {
		settle = func() { time.Sleep(DefaultSettle) }
	}
	for _, p := range cfg.Rows {
		p.Set(false)
	}
	return &Scanner{
		rows:    cfg.Rows,
		cols:    cfg.Columns,
		table:   cfg.Table,
		filters: filters,
		settle:  settle,
	}, nil
}

func (s *Scanner) Rows() int    { return len(s.rows) }
func (s *Scanner) Columns() int { return len(s.cols) }

// Scan performs one pass over the matrix. Every position's filter is fed
// exactly once; pressed positions are resolved through the table with Dual
// keys becoming pointer buttons when mouseMode is set. A buffer overflow is
// returned as a fatal CapacityExceeded error.
func (s *Scanner) Scan(buf *Buffers, mouseMode bool, onPress func()) error {
	buf.Clear()
	var firstErr error
	for r, row := range s.rows {
		row.Set(true)
		s.settle()
		for c, col := range s.cols {
			if !s.filters[r][c].Update(col.Get(), onPress) {
				continue
			}
			if firstErr != nil {
				continue
			}
			if err := buf.Apply(s.table.At(r, c), mouseMode); err != nil {
				firstErr = err
			}
		}
		row.Set(false)
	}
	return firstErr
}
