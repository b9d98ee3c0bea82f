package motion

import "github.com/charmbracelet/harmonica"

// TiltSpring animates a two-axis tilt (degrees) toward a target with a
// damped spring. An underdamped ratio gives the visible overshoot that
// makes the tilt feel physical.
//
// Unlike RotationState it is not self-synchronized: it belongs to a single
// task and is stepped once per frame.
type TiltSpring struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
	tx, ty float64
}

// NewTiltSpring returns a spring stepped at fps frames/second with the given
// angular frequency and damping ratio.
func NewTiltSpring(fps int, frequency, damping float64) *TiltSpring {
	if fps <= 0 {
		fps = 60
	}
	return &TiltSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// SetTarget aims the spring at a new tilt.
func (s *TiltSpring) SetTarget(x, y float32) {
	s.tx = float64(x)
	s.ty = float64(y)
}

// Target returns the tilt the spring is chasing.
func (s *TiltSpring) Target() (x, y float32) {
	return float32(s.tx), float32(s.ty)
}

// Step advances both axes one frame.
func (s *TiltSpring) Step() {
	s.x, s.vx = s.spring.Update(s.x, s.vx, s.tx)
	s.y, s.vy = s.spring.Update(s.y, s.vy, s.ty)
}

// X returns the current tilt about the horizontal axis.
func (s *TiltSpring) X() float32 { return float32(s.x) }

// Y returns the current tilt about the vertical axis.
func (s *TiltSpring) Y() float32 { return float32(s.y) }

const settleEps = 0.05

// Settled reports whether both axes have effectively reached the target.
func (s *TiltSpring) Settled() bool {
	return abs64(s.x-s.tx) < settleEps && abs64(s.y-s.ty) < settleEps &&
		abs64(s.vx) < settleEps && abs64(s.vy) < settleEps
}

// Snap jumps both axes to the target and kills all velocity.
func (s *TiltSpring) Snap() {
	s.x, s.y = s.tx, s.ty
	s.vx, s.vy = 0, 0
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
