// Package app assembles the gesture demo: the kernel, the services, the
// three panels and the console, plus the host/embedded entrypoints.
package app

import (
	"errors"
	"sync/atomic"

	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/flickui/services/console"
	"flick/flickui/services/input"
	"flick/flickui/services/logger"
	"flick/flickui/services/panelmgr"
	"flick/flickui/tasks/pinchbox"
	"flick/flickui/tasks/spinbox"
	"flick/flickui/tasks/tiltcard"
	"flick/hal"
)

// ErrShutdown is returned by the step function after a shutdown request
// (Escape or Ctrl-C in a panel). Hosts treat it as a clean exit.
var ErrShutdown = errors.New("shutdown requested")

type system struct {
	k    *kernel.Kernel
	spin *spinbox.Task
	quit atomic.Bool
}

// New starts the demo with the default config and returns the per-frame
// step function for the host loop.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the demo and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = newSystem(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	bootStep(h, "kernel")
	s := &system{k: kernel.New()}
	installPanicHandler(h)

	k := s.k
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	consoleEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	panelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctrlEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	spinEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	pinchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	tiltEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	bootStep(h, "tasks")
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv), consoleEP.Restrict(kernel.RightSend)))
	k.AddTask(console.New(h.Display(), consoleEP.Restrict(kernel.RightRecv)))
	s.spin = spinbox.New(h.Display(), spinEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), cfg.decay())
	k.AddTask(s.spin)
	k.AddTask(pinchbox.New(h.Display(), pinchEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), pinchbox.Params{
		TapMaxMillis: cfg.Gesture.TapMaxMillis,
		TapSlopPx:    float32(cfg.Gesture.TapSlopPx),
	}))
	k.AddTask(tiltcard.New(h.Display(), tiltEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), tiltcard.Params{
		TapMaxMillis: cfg.Gesture.TapMaxMillis,
		TapSlopPx:    float32(cfg.Gesture.TapSlopPx),
		Frequency:    cfg.Spring.Frequency,
		Damping:      cfg.Spring.Damping,
		MaxTiltDeg:   float32(cfg.Spring.MaxTiltDeg),
	}))
	k.AddTask(panelmgr.New(
		panelEP.Restrict(kernel.RightRecv),
		spinEP.Restrict(kernel.RightSend),
		pinchEP.Restrict(kernel.RightSend),
		tiltEP.Restrict(kernel.RightSend),
		consoleEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
		cfg.initialPanel(),
	))
	k.AddTask(input.New(h.Input(), panelEP.Restrict(kernel.RightSend), ctrlEP.Restrict(kernel.RightSend)))
	k.AddTask(&ctrlTask{ep: ctrlEP.Restrict(kernel.RightRecv), quit: &s.quit})

	bootStep(h, "ticks")
	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}

func (s *system) step() error {
	if s.quit.Load() {
		s.k.Close()
		return ErrShutdown
	}
	return nil
}

// ctrlTask flips the quit flag when a shutdown request arrives. The host
// loop polls the flag via step, so the kernel side never blocks on it.
type ctrlTask struct {
	ep   kernel.Capability
	quit *atomic.Bool
}

func (t *ctrlTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if msg.Kind == uint16(proto.MsgShutdown) {
			t.quit.Store(true)
		}
	}
}
