//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// ScriptedPointer is a pointer event injected at a given tick by the
// headless runner.
type ScriptedPointer struct {
	Tick  uint64
	Event PointerEvent
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int

	// Ticks stops the runner once the tick clock reaches this value
	// (ticks are milliseconds). Zero means run until the context ends.
	Ticks uint64

	// Script feeds synthetic pointer events, ordered by Tick.
	Script []ScriptedPointer

	// FastForward skips the wall-clock pacing between iterations.
	FastForward bool
}

// RunHeadless runs the app without opening a window.
//
// Unlike the windowed runner, time here is virtual: every loop iteration
// advances the tick clock by exactly 1000/Hz ticks, so scripted input is
// deterministic regardless of wall-clock jitter.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	msPerTick := uint64(1000 / cfg.Hz)
	if msPerTick == 0 {
		msPerTick = 1
	}

	h := New().(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	script := cfg.Script
	for {
		if cfg.FastForward {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}

		h.t.stepN(msPerTick)
		for len(script) > 0 && script[0].Tick <= h.t.seq {
			h.ptr.inject(script[0].Event)
			script = script[1:]
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		if cfg.Ticks > 0 && h.t.seq >= cfg.Ticks {
			return nil
		}
	}
}
