//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
	ptr Pointer
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }
func (in tinyGoInput) Pointer() Pointer   { return in.ptr }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// serialLogger writes to the default console (USB CDC on the PyPortal).
type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		machine.Serial.WriteByte(s[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		machine.Serial.WriteByte(b[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}
