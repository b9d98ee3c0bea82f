package gesture

import (
	"math"
	"testing"
)

func TestPinchScaleFromSpread(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 200, Y: 100})
	if !p.Pinching() {
		t.Fatal("expected pinch with two pointers down")
	}

	upd, ok := p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: 300, Y: 100})
	if !ok {
		t.Fatal("expected an update")
	}
	// Doubling the pointer distance doubles the scale.
	if math.Abs(float64(upd.Scale)-2) > 1e-4 {
		t.Fatalf("expected scale 2, got %v", upd.Scale)
	}
	if math.Abs(float64(upd.ScaleDelta)-1) > 1e-4 {
		t.Fatalf("expected scale delta 1, got %v", upd.ScaleDelta)
	}
	if math.Abs(float64(upd.Rotation)) > 1e-4 {
		t.Fatalf("expected no rotation, got %v", upd.Rotation)
	}
}

func TestPinchRotationTracksAngle(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 200, Y: 100})

	// Swing the second pointer a quarter turn around the first.
	upd, ok := p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: 100, Y: 200})
	if !ok {
		t.Fatal("expected an update")
	}
	if math.Abs(float64(upd.Rotation)-math.Pi/2) > 1e-4 {
		t.Fatalf("expected rotation pi/2, got %v", upd.Rotation)
	}
	if math.Abs(float64(upd.Scale)-1) > 1e-4 {
		t.Fatalf("expected scale 1, got %v", upd.Scale)
	}
}

func TestPinchRotationAccumulatesAcrossSeam(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 0, Y: 0})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 100, Y: -10})

	// Walk the second pointer through the atan2 seam in small arcs.
	total := float32(0)
	steps := []struct{ x, y float32 }{
		{100, 10}, {90, 40}, {60, 80}, {0, 100}, {-60, 80}, {-90, 40}, {-100, 10},
	}
	var last PinchUpdate
	for _, s := range steps {
		upd, ok := p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: s.x, Y: s.y})
		if !ok {
			t.Fatal("expected an update")
		}
		total += upd.RotDelta
		last = upd
	}
	if math.Abs(float64(last.Rotation-total)) > 1e-4 {
		t.Fatalf("expected accumulated rotation %v, got %v", total, last.Rotation)
	}
	// Nearly half a turn, with no 2*pi jumps.
	if last.Rotation < 2.5 || last.Rotation > 3.3 {
		t.Fatalf("expected rotation near pi, got %v", last.Rotation)
	}
}

func TestPinchSinglePointerPansOnly(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 50, Y: 50})
	upd, ok := p.Handle(PointerEvent{ID: 0, Phase: PhaseMove, X: 60, Y: 70})
	if !ok {
		t.Fatal("expected an update")
	}
	if upd.PanX != 10 || upd.PanY != 20 {
		t.Fatalf("expected pan (10,20), got (%v,%v)", upd.PanX, upd.PanY)
	}
	if upd.Scale != 1 || upd.Rotation != 0 {
		t.Fatalf("expected identity scale/rotation, got %v/%v", upd.Scale, upd.Rotation)
	}
}

func TestPinchLiftReanchorsSurvivor(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 200, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: 250, Y: 100})
	p.Handle(PointerEvent{ID: 1, Phase: PhaseUp, X: 100, Y: 100})

	if p.Pinching() {
		t.Fatal("expected pinch to end when a pointer lifts")
	}
	upd, ok := p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: 255, Y: 103})
	if !ok {
		t.Fatal("expected a pan update from the survivor")
	}
	if upd.PanX != 5 || upd.PanY != 3 {
		t.Fatalf("expected pan (5,3) without a jump, got (%v,%v)", upd.PanX, upd.PanY)
	}
}

func TestPinchIgnoresThirdPointer(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 200, Y: 100})
	if _, ok := p.Handle(PointerEvent{ID: 3, Phase: PhaseDown, X: 150, Y: 300}); ok {
		t.Fatal("expected third pointer down to be ignored")
	}
	if _, ok := p.Handle(PointerEvent{ID: 3, Phase: PhaseMove, X: 150, Y: 400}); ok {
		t.Fatal("expected third pointer move to be ignored")
	}
	if !p.Pinching() {
		t.Fatal("expected original pinch to survive")
	}
}

func TestPinchDegenerateStartDistance(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Handle(PointerEvent{ID: 2, Phase: PhaseDown, X: 100, Y: 100})

	upd, ok := p.Handle(PointerEvent{ID: 2, Phase: PhaseMove, X: 180, Y: 100})
	if !ok {
		t.Fatal("expected an update")
	}
	// An anchor distance under a pixel cannot define a ratio.
	if upd.Scale != 1 {
		t.Fatalf("expected guarded scale 1, got %v", upd.Scale)
	}
}

func TestPinchReset(t *testing.T) {
	var p PinchTracker
	p.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 100, Y: 100})
	p.Reset()
	if p.Active() {
		t.Fatal("expected no active pointers after reset")
	}
	if _, ok := p.Handle(PointerEvent{ID: 1, Phase: PhaseMove, X: 120, Y: 100}); ok {
		t.Fatal("expected move after reset to be ignored")
	}
}
