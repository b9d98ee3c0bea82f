package motion

import "math"

// Decay is an exponential fling model: velocity shrinks by e^(-Rate·t) and
// the animation settles once it drops under MinVelocity or MaxMillis passes.
//
// The zero value is unusable; call normalized or start from DefaultDecay.
type Decay struct {
	Rate        float32 // decay constant, 1/s
	MinVelocity float32 // settle threshold, units/s
	MaxMillis   uint32  // hard stop for the animation
}

// DefaultDecay halves the velocity every second.
func DefaultDecay() Decay {
	return Decay{Rate: math.Ln2, MinVelocity: 2, MaxMillis: 8000}
}

func (d Decay) normalized() Decay {
	def := DefaultDecay()
	if d.Rate <= 0 {
		d.Rate = def.Rate
	}
	if d.MinVelocity <= 0 {
		d.MinVelocity = def.MinVelocity
	}
	if d.MaxMillis == 0 {
		d.MaxMillis = def.MaxMillis
	}
	return d
}

// step advances one frame. It returns the exact displacement integral over
// dt and the velocity after dt, so the result does not depend on frame rate.
func (d Decay) step(v float32, dtMillis uint32) (dPos, next float32) {
	if dtMillis == 0 || v == 0 {
		return 0, v
	}
	dt := float64(dtMillis) / 1000
	k := math.Exp(-float64(d.Rate) * dt)
	next = v * float32(k)
	dPos = float32(float64(v) * (1 - k) / float64(d.Rate))
	return dPos, next
}

// Total returns the displacement an undisturbed fling from v0 converges to.
func (d Decay) Total(v0 float32) float32 {
	d = d.normalized()
	return v0 / d.Rate
}

// SettleMillis returns when a fling from v0 falls under MinVelocity,
// capped at MaxMillis.
func (d Decay) SettleMillis(v0 float32) uint32 {
	d = d.normalized()
	mag := v0
	if mag < 0 {
		mag = -mag
	}
	if mag <= d.MinVelocity {
		return 0
	}
	t := math.Log(float64(mag/d.MinVelocity)) / float64(d.Rate)
	ms := uint32(t * 1000)
	if ms > d.MaxMillis {
		return d.MaxMillis
	}
	return ms
}
