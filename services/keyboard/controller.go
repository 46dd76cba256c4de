// Package keyboard is the control loop: it scans the matrix, integrates the
// pointer, arbitrates the mode and writes reports through the HID endpoint
// on the cadences given by config.Firmware.
package keyboard

import (
	"context"
	"log/slog"
	"time"

	"keymatrix-go/bus"
	"keymatrix-go/config"
	"keymatrix-go/errcode"
	"keymatrix-go/hid"
	"keymatrix-go/keymap"
	"keymatrix-go/keymatrix"
	"keymatrix-go/mode"
	"keymatrix-go/pointer"
	"keymatrix-go/types"
	"keymatrix-go/x/logx"
)

// Telegram receives the running press count.
type Telegram interface {
	SendCount(n uint64) error
}

// Deps are the collaborators the controller does not own.
type Deps struct {
	Rows      []keymatrix.OutputPin
	Columns   []keymatrix.InputPin
	Table     keymap.Table   // defaults to keymap.Default()
	Pointer   pointer.Source // nil disables the pointer
	Telegram  Telegram       // nil disables the press telegram
	Transport hid.Transport
	Bus       *bus.Bus // nil gives the controller a private bus
	Settle    func()   // overrides the settle delay from config
}

// Controller owns every piece of per-tick state.
type Controller struct {
	cfg  config.Firmware
	log  *slog.Logger
	conn *bus.Connection

	scanner  *keymatrix.Scanner
	buf      *keymatrix.Buffers
	tracker  *pointer.Tracker
	arbiter  *mode.Arbiter
	endpoint *hid.Endpoint
	source   pointer.Source
	telegram Telegram

	keyboardEvery uint64
	consumerEvery uint64
	warmupTicks   uint64

	tick    uint64
	presses uint64
	pressed bool
	onPress func()
	state   mode.State

	kbReport       types.KeyboardReport
	mouseReport    types.MouseReport
	consumerReport types.ConsumerReport
}

// New validates cfg and wires the core. Geometry mismatches between the
// pins and the table are returned as errcode.ConfigMismatch.
func New(cfg config.Firmware, d Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if d.Transport == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "keyboard.new", Msg: "no HID transport"}
	}
	table := d.Table
	if table == nil {
		table = keymap.Default()
	}
	strategy := keymatrix.StrategyHysteresis
	if cfg.Debounce == config.DebounceCooldown {
		strategy = keymatrix.StrategyCooldown
	}
	settle := d.Settle
	if settle == nil {
		settle = sleeper(cfg.Settle)
	}
	scanner, err := keymatrix.New(keymatrix.Config{
		Rows:    d.Rows,
		Columns: d.Columns,
		Table:   table,
		Filters: keymatrix.NewFilters(len(d.Rows), len(d.Columns), strategy, cfg.CooldownTicks),
		Settle:  settle,
	})
	if err != nil {
		return nil, err
	}
	b := d.Bus
	if b == nil {
		b = bus.NewBus(4)
	}

	c := &Controller{
		cfg:           cfg,
		log:           logx.For(logx.ComponentKeyboard),
		conn:          b.NewConnection("keyboard"),
		scanner:       scanner,
		buf:           keymatrix.NewBuffers(),
		tracker:       pointer.NewTracker(curveFor(&cfg), cfg.PointerScale),
		arbiter:       mode.New(cfg.MousenessThreshold, keymap.MouseModifierKeys),
		endpoint:      hid.NewEndpoint(d.Transport),
		source:        d.Pointer,
		telegram:      d.Telegram,
		keyboardEvery: cfg.Ticks(cfg.KeyboardPeriod),
		consumerEvery: cfg.Ticks(cfg.ConsumerPeriod),
		warmupTicks:   cfg.Ticks(cfg.PointerWarmup),
	}
	c.onPress = func() {
		c.presses++
		c.pressed = true
	}
	c.publishMode()
	return c, nil
}

func curveFor(cfg *config.Firmware) pointer.Curve {
	if cfg.PointerCurve == config.CurveQuadratic {
		return pointer.Quadratic(cfg.PointerGain)
	}
	return pointer.Linear(cfg.PointerGain)
}

func sleeper(d time.Duration) func() {
	if d <= 0 {
		return func() {}
	}
	return func() { time.Sleep(d) }
}

// Endpoint is the critical section shared with the transport's interrupt
// context.
func (c *Controller) Endpoint() *hid.Endpoint { return c.endpoint }

func (c *Controller) Tick() uint64              { return c.tick }
func (c *Controller) Presses() uint64           { return c.presses }
func (c *Controller) Mode() mode.State          { return c.state }
func (c *Controller) Mouseness() uint64         { return c.arbiter.Mouseness() }
func (c *Controller) Tracker() *pointer.Tracker { return c.tracker }

// Step runs one scan tick and whichever report cadences fall due on it.
// Transient failures are logged and cost only the affected cycle; the
// returned error is always fatal.
func (c *Controller) Step() error {
	c.tick++
	if err := c.scanTick(); err != nil {
		return err
	}
	if c.tick%c.keyboardEvery == 0 {
		if err := c.keyboardTick(); err != nil {
			return err
		}
	}
	if c.tick%c.consumerEvery == 0 {
		if err := c.consumerTick(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) scanTick() error {
	if err := c.check("hid.tick", c.endpoint.Tick()); err != nil {
		return err
	}
	c.pressed = false
	if err := c.scanner.Scan(c.buf, c.state == mode.PointerOn, c.onPress); err != nil {
		return err
	}
	if !c.pressed {
		return nil
	}
	c.conn.Publish(c.conn.NewMessage(TopicPress, types.PressEvent{Count: c.presses}, false))
	if c.cfg.PressTelegram && c.telegram != nil {
		if err := c.telegram.SendCount(c.presses); err != nil {
			c.log.Debug("press telegram dropped", "count", c.presses, "err", err)
		}
	}
	return nil
}

func (c *Controller) keyboardTick() error {
	if c.source != nil && c.tick >= c.warmupTicks {
		// A failed read only means no new sample this cycle.
		if err := c.tracker.Update(c.source); err != nil {
			c.log.Debug("pointer read skipped", "err", err)
		}
	}
	rep := c.tracker.Report()
	hid.BuildMouse(&c.mouseReport, rep, c.buf.ButtonMask())

	if s := c.arbiter.Evaluate(c.mouseReport.X, c.mouseReport.Y, &c.buf.Keys, &c.buf.Consumer); s != c.state {
		c.state = s
		c.log.Debug("mode changed", "mode", s.String(), "mouseness", c.arbiter.Mouseness())
		c.publishMode()
	}

	hid.BuildKeyboard(&c.kbReport, c.buf.Keys.Items())
	if err := c.check("hid.keyboard", c.endpoint.WriteKeyboard(&c.kbReport)); err != nil {
		return err
	}
	err := c.endpoint.WriteMouse(&c.mouseReport)
	if err == nil {
		c.tracker.Reconcile(rep.DX, rep.DY)
		return nil
	}
	return c.check("hid.mouse", err)
}

func (c *Controller) consumerTick() error {
	hid.BuildConsumer(&c.consumerReport, c.buf.Consumer.Items())
	err := c.endpoint.WriteConsumer(&c.consumerReport)
	if errcode.Of(err) == errcode.Duplicate {
		return nil
	}
	return c.check("hid.consumer", err)
}

// check swallows transient errors and passes fatal ones through.
func (c *Controller) check(op string, err error) error {
	if err == nil {
		return nil
	}
	if errcode.IsFatal(err) {
		return err
	}
	c.log.Debug("cycle skipped", "op", op, "err", err)
	return nil
}

func (c *Controller) publishMode() {
	c.conn.Publish(c.conn.NewMessage(TopicMode, types.ModeEvent{
		PointerMode: c.state == mode.PointerOn,
		Mouseness:   c.arbiter.Mouseness(),
	}, true))
}

// Fault logs err and publishes it as the retained fault event.
func (c *Controller) Fault(err error) {
	c.log.Error("control loop halted", "err", err)
	c.conn.Publish(c.conn.NewMessage(TopicFault, types.FaultEvent{
		Code: string(errcode.Of(err)),
		Msg:  err.Error(),
	}, true))
}

// Run steps the controller every scan period and polls the endpoint every
// loop-poll period until ctx is cancelled or a fatal error occurs. A fatal
// error is published with Fault and returned; cancellation returns nil.
func (c *Controller) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pollErr := make(chan error, 1)
	go c.pollLoop(ctx, pollErr)

	tick := time.NewTicker(c.cfg.ScanPeriod)
	defer tick.Stop()

	c.log.Info("control loop started",
		"rows", c.scanner.Rows(), "columns", c.scanner.Columns(),
		"scan", c.cfg.ScanPeriod, "debounce", c.cfg.Debounce)
	for {
		select {
		case <-ctx.Done():
			c.log.Info("control loop stopped")
			return nil
		case err := <-pollErr:
			c.Fault(err)
			return err
		case <-tick.C:
			if err := c.Step(); err != nil {
				c.Fault(err)
				return err
			}
		}
	}
}

func (c *Controller) pollLoop(ctx context.Context, errs chan<- error) {
	tick := time.NewTicker(c.cfg.LoopPoll)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := c.endpoint.Poll(); errcode.IsFatal(err) {
				select {
				case errs <- err:
				default:
				}
				return
			}
		}
	}
}
