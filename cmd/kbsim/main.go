//go:build !(rp2040 || rp2350)

// Command kbsim replays a keyboard scenario against the control loop on the
// host and prints the reports the firmware would have sent.
//
// Usage:
//
//	kbsim [flags] <scenario.toml|scenario.yaml>
//
// Examples:
//
//	# One run
//	kbsim sim/testdata/typing.toml
//
//	# Re-run on every save, with debug logs
//	kbsim -watch -v sim/testdata/pointer.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"keymatrix-go/sim"
	"keymatrix-go/x/logx"
)

func main() {
	watch := flag.Bool("watch", false, "re-run whenever the scenario file changes")
	verbose := flag.Bool("v", false, "debug logging")
	logFormat := flag.String("log-format", "text", "log format: text, json")
	quiet := flag.Bool("q", false, "print only the summary")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <scenario>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *verbose {
		logx.SetLevel(slog.LevelDebug)
	}
	if *logFormat == "json" {
		logx.SetFormat(logx.FormatJSON)
	}

	ok := runOnce(path, *quiet)
	if !*watch {
		if !ok {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Fprintf(os.Stderr, "watching %s (Ctrl-C to stop)\n", path)
	if err := sim.Watch(ctx, path, func() { runOnce(path, *quiet) }); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(path string, quiet bool) bool {
	s, err := sim.LoadScenario(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return false
	}
	var out io.Writer = os.Stdout
	if quiet {
		out = nil
	}
	res, err := sim.Run(s, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return false
	}
	fmt.Printf("%s: %d ticks, %d presses, final mode %s", res.Name, s.Ticks, res.Presses, res.Mode)
	if res.Fault != nil {
		fmt.Printf(", halted: %v\n", res.Fault)
		return false
	}
	fmt.Println()
	return true
}
