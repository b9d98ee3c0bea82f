package gesture

import "flick/flickui/motion"

// SpinDrag converts a vertical drag into rotation and hands the release
// velocity to the rotation state's decay animation.
//
// A full drag across the extent is one revolution: Δdeg = Δunits/extent·360.
// The recognizer has two states, idle and dragging. Only the pointer that
// started the drag is tracked; events from other pointers are ignored until
// it lifts.
type SpinDrag struct {
	state   *motion.RotationState
	extent  float32
	tracker VelocityTracker

	dragging  bool
	pointerID int
	lastY     float32
}

// NewSpinDrag returns an idle recognizer writing through to state. extent
// is the draggable region's height in pointer units; non-positive extents
// are clamped to 1.
func NewSpinDrag(state *motion.RotationState, extent float32) *SpinDrag {
	if extent <= 0 {
		extent = 1
	}
	return &SpinDrag{state: state, extent: extent, pointerID: -1}
}

// Dragging reports whether a drag is in progress.
func (d *SpinDrag) Dragging() bool { return d.dragging }

// Handle feeds one pointer event through the state machine.
func (d *SpinDrag) Handle(ev PointerEvent) {
	switch ev.Phase {
	case PhaseDown:
		if d.dragging {
			return
		}
		d.dragging = true
		d.pointerID = ev.ID
		d.lastY = ev.Y
		// A touch while a fling is in flight grabs the rotation.
		d.state.Stop()
		d.tracker.Reset()
		d.tracker.Add(ev.Millis, ev.Y)

	case PhaseMove:
		if !d.dragging || ev.ID != d.pointerID {
			return
		}
		deltaDeg := (d.lastY - ev.Y) / d.extent * 360
		d.lastY = ev.Y
		d.state.Set(d.state.Current() + deltaDeg)
		d.tracker.Add(ev.Millis, ev.Y)

	case PhaseUp, PhaseCancel:
		if !d.dragging || ev.ID != d.pointerID {
			return
		}
		vy := d.tracker.Estimate()
		d.dragging = false
		d.pointerID = -1
		d.tracker.Reset()
		// Upward drag shrinks Y, so the spin velocity flips the sign.
		d.state.StartDecay(-vy / d.extent * 360)
	}
}
