package gesture

import "math"

// PinchUpdate describes how a tracked transform changed on one pointer move.
type PinchUpdate struct {
	Scale      float32 // current / anchor distance ratio
	ScaleDelta float32 // distance ratio change since the previous update, minus 1
	Rotation   float32 // radians accumulated since the gesture anchored
	RotDelta   float32 // radians since the previous update
	PanX, PanY float32 // midpoint movement since the previous update
	CenterX    float32
	CenterY    float32
}

type pinchPointer struct {
	id   int
	x, y float32
	down bool
}

// PinchTracker follows up to two concurrent pointers. With both down it
// reports scale, rotation and midpoint pan; with one down it degrades to
// pan only, which is all a single-touch resistive screen can drive.
//
// Additional pointers beyond two are ignored. The zero value is ready to
// use.
type PinchTracker struct {
	pts [2]pinchPointer

	pinching     bool
	initialDist  float32
	prevDist     float32
	prevAngle    float32
	rotAccum     float32
	prevCX       float32
	prevCY       float32

	panning bool
	prevX   float32
	prevY   float32
}

// Active reports whether any pointer is down.
func (p *PinchTracker) Active() bool {
	return p.pts[0].down || p.pts[1].down
}

// Pinching reports whether two pointers are down.
func (p *PinchTracker) Pinching() bool { return p.pinching }

// Reset drops all pointers and anchors.
func (p *PinchTracker) Reset() {
	*p = PinchTracker{}
}

// Handle feeds one pointer event. It reports true when the event moved the
// tracked transform; down and up events only re-anchor.
func (p *PinchTracker) Handle(ev PointerEvent) (PinchUpdate, bool) {
	switch ev.Phase {
	case PhaseDown:
		slot := p.slotOf(ev.ID)
		if slot < 0 {
			slot = p.freeSlot()
		}
		if slot < 0 {
			return PinchUpdate{}, false
		}
		p.pts[slot] = pinchPointer{id: ev.ID, x: ev.X, y: ev.Y, down: true}
		if p.pts[0].down && p.pts[1].down {
			p.anchorPinch()
		} else {
			p.anchorPan(ev.X, ev.Y)
		}

	case PhaseMove:
		slot := p.slotOf(ev.ID)
		if slot < 0 {
			return PinchUpdate{}, false
		}
		p.pts[slot].x = ev.X
		p.pts[slot].y = ev.Y
		if p.pinching && p.pts[0].down && p.pts[1].down {
			return p.pinchUpdate(), true
		}
		if p.panning {
			upd := PinchUpdate{
				Scale:   1,
				PanX:    ev.X - p.prevX,
				PanY:    ev.Y - p.prevY,
				CenterX: ev.X,
				CenterY: ev.Y,
			}
			p.prevX = ev.X
			p.prevY = ev.Y
			return upd, true
		}

	case PhaseUp, PhaseCancel:
		slot := p.slotOf(ev.ID)
		if slot < 0 {
			return PinchUpdate{}, false
		}
		p.pts[slot].down = false
		p.pinching = false
		// Re-anchor the pan on the survivor so the transform does not jump.
		if other := p.downSlot(); other >= 0 {
			p.anchorPan(p.pts[other].x, p.pts[other].y)
		} else {
			p.panning = false
		}
	}
	return PinchUpdate{}, false
}

func (p *PinchTracker) slotOf(id int) int {
	for i := range p.pts {
		if p.pts[i].down && p.pts[i].id == id {
			return i
		}
	}
	return -1
}

func (p *PinchTracker) freeSlot() int {
	for i := range p.pts {
		if !p.pts[i].down {
			return i
		}
	}
	return -1
}

func (p *PinchTracker) downSlot() int {
	for i := range p.pts {
		if p.pts[i].down {
			return i
		}
	}
	return -1
}

func (p *PinchTracker) anchorPinch() {
	dist, angle, cx, cy := p.measure()
	p.pinching = true
	p.panning = false
	p.initialDist = dist
	p.prevDist = dist
	p.prevAngle = angle
	p.rotAccum = 0
	p.prevCX = cx
	p.prevCY = cy
}

func (p *PinchTracker) anchorPan(x, y float32) {
	p.panning = true
	p.prevX = x
	p.prevY = y
}

func (p *PinchTracker) pinchUpdate() PinchUpdate {
	dist, angle, cx, cy := p.measure()

	scale := float32(1)
	if p.initialDist >= 1 {
		scale = dist / p.initialDist
	}
	scaleDelta := float32(0)
	if p.prevDist >= 1 {
		scaleDelta = dist/p.prevDist - 1
	}
	rotDelta := normAngle(angle - p.prevAngle)
	p.rotAccum += rotDelta

	upd := PinchUpdate{
		Scale:      scale,
		ScaleDelta: scaleDelta,
		Rotation:   p.rotAccum,
		RotDelta:   rotDelta,
		PanX:       cx - p.prevCX,
		PanY:       cy - p.prevCY,
		CenterX:    cx,
		CenterY:    cy,
	}

	p.prevDist = dist
	p.prevAngle = angle
	p.prevCX = cx
	p.prevCY = cy
	return upd
}

func (p *PinchTracker) measure() (dist, angle, cx, cy float32) {
	dx := float64(p.pts[1].x - p.pts[0].x)
	dy := float64(p.pts[1].y - p.pts[0].y)
	dist = float32(math.Sqrt(dx*dx + dy*dy))
	angle = float32(math.Atan2(dy, dx))
	cx = (p.pts[0].x + p.pts[1].x) / 2
	cy = (p.pts[0].y + p.pts[1].y) / 2
	return dist, angle, cx, cy
}

// normAngle wraps a into (-pi, pi] so crossing the atan2 seam does not
// produce a full-turn jump.
func normAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
