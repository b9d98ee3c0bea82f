//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"flick/app"
	"flick/hal"
)

func main() {
	var (
		hcfg    hal.HeadlessConfig
		cfgPath string
		panel   string
		verbose bool
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop once the tick clock reaches N ms in headless mode (0 = run forever).")
	flag.StringVar(&cfgPath, "config", "", "TOML config file.")
	flag.StringVar(&panel, "panel", "", "Panel shown at boot: spin, pinch, tilt or console.")
	flag.BoolVar(&verbose, "v", false, "Debug logging.")
	flag.Parse()

	hal.SetVerbose(verbose)

	cfg, err := app.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if panel != "" {
		cfg.InitialPanel = panel
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hcfg)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, app.ErrShutdown) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := hal.RunWindow(newApp); err != nil && !errors.Is(err, app.ErrShutdown) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
