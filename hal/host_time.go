//go:build !tinygo

package hal

import "time"

// One tick is one millisecond everywhere, so gesture timestamps and decay
// integrals use the same unit on the desktop and on hardware.
const hostTickInterval = time.Millisecond

// hostTime turns wall-clock time into the millisecond tick sequence. The
// window backend calls step once per drawn frame; sub-millisecond remainders
// carry over so the sequence never drifts against the wall clock.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last  time.Time
	carry time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.carry = 0
		t.stepN(n)
		return
	}

	elapsed := now.Sub(t.last) + t.carry
	t.last = now
	t.carry = elapsed % hostTickInterval
	t.stepN(uint64(elapsed / hostTickInterval))
}

// stepN advances the sequence directly; the headless runner uses it as a
// virtual clock.
func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
