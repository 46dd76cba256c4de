//go:build rp2040 || rp2350

// Command keyboard is the firmware entry point for the RP2040 board.
package main

import (
	"context"
	"time"

	"keymatrix-go/bus"
	"keymatrix-go/config"
	"keymatrix-go/drivers/auxmcu"
	"keymatrix-go/platform"
	"keymatrix-go/services/indicator"
	"keymatrix-go/services/keyboard"
	"keymatrix-go/x/logx"
)

func main() {
	ctx := context.Background()
	cfg := config.Default()

	if console, err := platform.Console(cfg.Pins); err == nil {
		logx.SetOutput(console)
	}
	log := logx.For(logx.ComponentKeyboard)

	i2c, err := platform.I2C(cfg.Pins)
	if err != nil {
		log.Error("i2c bring-up failed", "err", err)
		halt()
	}
	board, err := platform.Setup(platform.DefaultPinFactory(), i2c, cfg.Pins)
	if err != nil {
		log.Error("pin bring-up failed", "err", err)
		halt()
	}

	aux := auxmcu.New(board.I2C)
	aux.Configure(auxmcu.Config{Address: cfg.AuxAddress})

	b := bus.NewBus(4)
	if err := indicator.New(board.LED, indicator.BlinkPeriod).Start(ctx, b.NewConnection("indicator")); err != nil {
		log.Error("indicator start failed", "err", err)
		halt()
	}

	ctrl, err := keyboard.New(cfg, keyboard.Deps{
		Rows:      board.Rows,
		Columns:   board.Columns,
		Pointer:   aux,
		Telegram:  aux,
		Transport: platform.NewUSBHID(),
		Bus:       b,
	})
	if err != nil {
		log.Error("controller setup failed", "err", err)
		indicator.Blink(ctx, board.LED, indicator.BlinkPeriod)
	}

	// Run only returns on a fatal error, which it has already published;
	// the indicator is blinking from here on.
	_ = ctrl.Run(ctx)
	select {}
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
