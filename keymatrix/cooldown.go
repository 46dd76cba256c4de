package keymatrix

// DefaultCooldownTicks is roughly 50 ms at a 1 ms scan period.
const DefaultCooldownTicks = 50

// CooldownState is the time-locked latch: once a change is accepted, further
// changes are ignored for a fixed number of ticks. Coarser than
// DebounceState; kept as a selectable alternative.
type CooldownState struct {
	state     bool
	ticks     uint16
	remaining uint16
}

func NewCooldown(ticks uint16) *CooldownState {
	return &CooldownState{ticks: ticks}
}

func (c *CooldownState) Update(raw bool, onPress func()) bool {
	if c.remaining > 0 {
		c.remaining--
	}
	if raw != c.state && c.remaining == 0 {
		c.state = raw
		c.remaining = c.ticks
		if raw && onPress != nil {
			onPress()
		}
	}
	return c.state
}

// Strategy selects the filter used for every matrix position.
type Strategy uint8

const (
	StrategyHysteresis Strategy = iota
	StrategyCooldown
)

// NewFilters allocates one filter per position.
func NewFilters(rows, cols int, s Strategy, cooldownTicks uint16) [][]Filter {
	out := make([][]Filter, rows)
	for r := range out {
		out[r] = make([]Filter, cols)
		for c := range out[r] {
			switch s {
			case StrategyCooldown:
				out[r][c] = NewCooldown(cooldownTicks)
			default:
				out[r][c] = &DebounceState{}
			}
		}
	}
	return out
}
