//go:build !flickgl_fixed

package flickgl

import (
	"math"
	"testing"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestRadians(t *testing.T) {
	got := Radians(180)
	if diff := float64(got) - math.Pi; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("expected pi, got %v", got)
	}
}

func TestMat3TranslateApply(t *testing.T) {
	x, y := Mat3Translate(3, 4).Apply(1, 2)
	if x != 4 || y != 6 {
		t.Fatalf("expected (4, 6), got (%v, %v)", x, y)
	}
}

func TestMat3RotateQuarterTurn(t *testing.T) {
	x, y := Mat3Rotate(Scalar(math.Pi / 2)).Apply(1, 0)
	if absF32(x) > 1e-5 || absF32(y-1) > 1e-5 {
		t.Fatalf("expected (0, 1), got (%v, %v)", x, y)
	}
}

func TestMat3MulAppliesRightFirst(t *testing.T) {
	// Translate after scale: (1,1) -> scaled (2,2) -> translated (3,2).
	m := Mat3Mul(Mat3Translate(1, 0), Mat3Scale(2, 2))
	x, y := m.Apply(1, 1)
	if x != 3 || y != 2 {
		t.Fatalf("expected (3, 2), got (%v, %v)", x, y)
	}
}

func TestMat3AboutPivotFixesPivot(t *testing.T) {
	m := Mat3About(10, 10, Mat3Scale(2, 2))
	x, y := m.Apply(10, 10)
	if x != 10 || y != 10 {
		t.Fatalf("pivot moved to (%v, %v)", x, y)
	}
	x, y = m.Apply(11, 10)
	if x != 12 || y != 10 {
		t.Fatalf("expected (12, 10), got (%v, %v)", x, y)
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
