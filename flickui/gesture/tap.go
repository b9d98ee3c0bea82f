package gesture

const (
	defaultTapMaxMillis = 250
	defaultTapSlopPx    = 12
)

// TapRecognizer detects a tap: one pointer down and up within a time and
// movement budget. Drifting past the slop, a cancel, or a second pointer
// going down aborts the candidate.
//
// The zero value uses the default budgets.
type TapRecognizer struct {
	MaxMillis uint32
	SlopPx    float32

	tracking  bool
	pointerID int
	downX     float32
	downY     float32
	downAt    uint32
}

// Handle feeds one pointer event. It reports true exactly when ev completes
// a tap; the tap position is ev.X, ev.Y.
func (r *TapRecognizer) Handle(ev PointerEvent) bool {
	maxMillis := r.MaxMillis
	if maxMillis == 0 {
		maxMillis = defaultTapMaxMillis
	}
	slop := r.SlopPx
	if slop <= 0 {
		slop = defaultTapSlopPx
	}

	switch ev.Phase {
	case PhaseDown:
		if r.tracking {
			// Second pointer: neither makes a tap.
			r.tracking = false
			return false
		}
		r.tracking = true
		r.pointerID = ev.ID
		r.downX = ev.X
		r.downY = ev.Y
		r.downAt = ev.Millis

	case PhaseMove:
		if !r.tracking || ev.ID != r.pointerID {
			return false
		}
		if exceeds(ev.X-r.downX, ev.Y-r.downY, slop) {
			r.tracking = false
		}

	case PhaseUp:
		if !r.tracking || ev.ID != r.pointerID {
			return false
		}
		r.tracking = false
		if ev.Millis-r.downAt > maxMillis {
			return false
		}
		if exceeds(ev.X-r.downX, ev.Y-r.downY, slop) {
			return false
		}
		return true

	case PhaseCancel:
		if r.tracking && ev.ID == r.pointerID {
			r.tracking = false
		}
	}
	return false
}

func exceeds(dx, dy, slop float32) bool {
	return dx*dx+dy*dy > slop*slop
}
