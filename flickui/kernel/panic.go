package kernel

import (
	"sync"
	"sync/atomic"
)

// Trap state is process wide: once any task panics the UI is dead, and the
// installed handler typically paints a trap screen and never returns.

// maxTrapStackBytes bounds the captured trace. The trap screen is a few
// dozen lines tall; it has no use for a full goroutine dump.
const maxTrapStackBytes = 4 * 1024

// PanicInfo describes the first task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var trap struct {
	active  atomic.Bool
	once    sync.Once
	handler atomic.Pointer[func(PanicInfo)]
}

// InPanicMode reports whether a task panic has been trapped.
func InPanicMode() bool { return trap.active.Load() }

// SetPanicHandler installs the handler for the first task panic. The handler
// runs at most once and must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	trap.handler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	trap.once.Do(func() {
		trap.active.Store(true)
		info.Stack = captureStack()
		if fn := trap.handler.Load(); fn != nil && *fn != nil {
			(*fn)(info)
		}
	})
}
