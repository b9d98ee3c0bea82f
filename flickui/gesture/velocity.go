package gesture

const (
	velocitySlots    = 8
	velocityWindowMs = 100
)

type posSample struct {
	millis uint32
	pos    float32
}

// VelocityTracker estimates instantaneous velocity along one axis from
// recent position samples.
//
// Samples land in a fixed ring; Estimate fits a least-squares slope over
// the ones inside a 100 ms window ending at the newest sample, so jitter
// averages out instead of spiking the result. The zero value is ready to
// use.
type VelocityTracker struct {
	samples [velocitySlots]posSample
	head    int
	count   int
}

// Add records a position sample. Timestamps are expected to be
// non-decreasing.
func (t *VelocityTracker) Add(millis uint32, pos float32) {
	t.samples[t.head] = posSample{millis: millis, pos: pos}
	t.head = (t.head + 1) % velocitySlots
	if t.count < velocitySlots {
		t.count++
	}
}

// Reset discards all samples.
func (t *VelocityTracker) Reset() {
	t.head = 0
	t.count = 0
}

// Count returns the number of stored samples.
func (t *VelocityTracker) Count() int { return t.count }

// Estimate returns the velocity in position units per second.
//
// Fewer than two windowed samples, or samples with no time spread, yield 0.
// The fit is translation invariant: shifting every position by a constant
// does not change the result.
func (t *VelocityTracker) Estimate() float32 {
	if t.count < 2 {
		return 0
	}

	newest := t.samples[(t.head-1+velocitySlots)%velocitySlots].millis

	var (
		ts, ps [velocitySlots]float64
		n      int
	)
	for i := 0; i < t.count; i++ {
		s := t.samples[(t.head-1-i+2*velocitySlots)%velocitySlots]
		if s.millis > newest || newest-s.millis > velocityWindowMs {
			break
		}
		ts[n] = float64(s.millis)
		ps[n] = float64(s.pos)
		n++
	}
	if n < 2 {
		return 0
	}

	var meanT, meanP float64
	for i := 0; i < n; i++ {
		meanT += ts[i]
		meanP += ps[i]
	}
	meanT /= float64(n)
	meanP /= float64(n)

	// Mean-centered least squares keeps the numbers small and the slope
	// independent of the absolute position.
	var num, den float64
	for i := 0; i < n; i++ {
		dt := ts[i] - meanT
		num += dt * (ps[i] - meanP)
		den += dt * dt
	}
	if den <= 0 {
		return 0
	}
	return float32(num / den * 1000)
}
