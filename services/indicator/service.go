// Package indicator drives the status LED: lit while the keyboard is in
// pointer mode, blinking forever once the control loop has faulted.
package indicator

import (
	"context"
	"time"

	"keymatrix-go/bus"
	"keymatrix-go/errcode"
	"keymatrix-go/services/keyboard"
	"keymatrix-go/types"
	"keymatrix-go/x/logx"
)

// BlinkPeriod is the half-period of the fault blink.
const BlinkPeriod = 100 * time.Millisecond

// LED is the single status output.
type LED interface {
	Set(on bool)
}

type Service struct {
	led    LED
	period time.Duration
}

// New returns a service for led. A non-positive period selects BlinkPeriod.
func New(led LED, period time.Duration) *Service {
	if period <= 0 {
		period = BlinkPeriod
	}
	return &Service{led: led, period: period}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, modeSub, faultSub *bus.Subscription) {
	defer conn.Unsubscribe(modeSub)
	defer conn.Unsubscribe(faultSub)

	log := logx.For(logx.ComponentIndicator)
	for {
		select {
		case <-ctx.Done():
			log.Debug("indicator stopping")
			return
		case msg := <-faultSub.Channel():
			if ev, ok := msg.Payload.(types.FaultEvent); ok {
				log.Warn("fault indicated", "code", ev.Code)
				Blink(ctx, s.led, s.period)
				return
			}
		case msg := <-modeSub.Channel():
			if ev, ok := msg.Payload.(types.ModeEvent); ok {
				s.led.Set(ev.PointerMode)
			}
		}
	}
}

// Start subscribes on conn and runs the service until ctx is cancelled. The
// subscriptions exist when Start returns, so no mode or fault event published
// afterwards is missed.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.led == nil || conn == nil {
		return errcode.Wrap(errcode.InvalidParams, "indicator.start", nil)
	}
	modeSub := conn.Subscribe(keyboard.TopicMode)
	faultSub := conn.Subscribe(keyboard.TopicFault)
	go s.serviceLoop(ctx, conn, modeSub, faultSub)
	return nil
}

// Blink toggles led every period until ctx is done. With a background
// context it never returns, which is the failed state of the firmware.
func Blink(ctx context.Context, led LED, period time.Duration) {
	if period <= 0 {
		period = BlinkPeriod
	}
	on := true
	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		led.Set(on)
		on = !on
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}
