package motion

import (
	"math"
	"testing"
)

func TestTiltSpringReachesTarget(t *testing.T) {
	s := NewTiltSpring(60, 6.0, 0.6)
	s.SetTarget(18, -12)

	settled := false
	for i := 0; i < 1200; i++ {
		s.Step()
		if s.Settled() {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatal("spring did not settle")
	}
	if math.Abs(float64(s.X())-18) > 0.1 || math.Abs(float64(s.Y())+12) > 0.1 {
		t.Fatalf("expected tilt near (18,-12), got (%v,%v)", s.X(), s.Y())
	}
}

func TestTiltSpringOvershoots(t *testing.T) {
	// Damping below 1 is underdamped: the tilt must swing past the target
	// before settling.
	s := NewTiltSpring(60, 6.0, 0.6)
	s.SetTarget(20, 0)

	var maxX float64
	for i := 0; i < 600; i++ {
		s.Step()
		if x := float64(s.X()); x > maxX {
			maxX = x
		}
	}
	if maxX <= 20.01 {
		t.Fatalf("expected overshoot past 20, peaked at %v", maxX)
	}
}

func TestTiltSpringSnap(t *testing.T) {
	s := NewTiltSpring(60, 6.0, 0.6)
	s.SetTarget(10, -5)
	s.Snap()
	if s.X() != 10 || s.Y() != -5 {
		t.Fatalf("expected snap to (10,-5), got (%v,%v)", s.X(), s.Y())
	}
	if !s.Settled() {
		t.Fatal("expected settled after snap")
	}
	if tx, ty := s.Target(); tx != 10 || ty != -5 {
		t.Fatalf("expected target (10,-5), got (%v,%v)", tx, ty)
	}
}
