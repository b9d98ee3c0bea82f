//go:build tinygo && bootdebug

package app

import (
	"sync"
	"time"

	"flick/hal"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

func bootDiagSetStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
}

// bootDiagStart repeats the current boot step on the logger until boot
// completes, so a hang is attributable to a step even without a debugger.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()
	if l == nil {
		return
	}

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			l.WriteLineString("boot: " + step)

			time.Sleep(250 * time.Millisecond)
		}
	}()
}
