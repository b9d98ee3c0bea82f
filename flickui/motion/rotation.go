package motion

import "sync"

// RotationState holds one rotation angle in degrees, unnormalized, plus the
// decay animation acting on it.
//
// Set, Stop and StartDecay supersede any in-flight decay: each bumps a
// generation counter, and Advance re-checks the generation before writing,
// so a superseded step can never move the angle afterwards. All methods are
// safe for concurrent use.
type RotationState struct {
	mu       sync.Mutex
	deg      float32
	gen      uint32
	decay    Decay
	v        float32
	elapsed  uint32
	decaying bool
}

// NewRotationState returns a state at angle 0 using the given decay model.
// Zero model fields fall back to DefaultDecay values.
func NewRotationState(decay Decay) *RotationState {
	return &RotationState{decay: decay.normalized()}
}

// Current returns the angle in degrees.
func (s *RotationState) Current() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deg
}

// Set writes the angle and cancels any in-flight decay.
func (s *RotationState) Set(deg float32) {
	s.mu.Lock()
	s.gen++
	s.deg = deg
	s.decaying = false
	s.mu.Unlock()
}

// Stop cancels any in-flight decay without touching the angle.
func (s *RotationState) Stop() {
	s.mu.Lock()
	s.gen++
	s.decaying = false
	s.mu.Unlock()
}

// StartDecay begins a fling from the current angle at v0 degrees/second,
// canceling any previous decay. A zero v0 settles immediately.
func (s *RotationState) StartDecay(v0 float32) {
	s.mu.Lock()
	s.gen++
	s.v = v0
	s.elapsed = 0
	s.decaying = v0 != 0
	s.mu.Unlock()
}

// Velocity returns the current decay velocity in degrees/second, 0 when
// settled.
func (s *RotationState) Velocity() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.decaying {
		return 0
	}
	return s.v
}

// Decaying reports whether a decay animation is in flight.
func (s *RotationState) Decaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decaying
}

// Advance steps the active decay by dtMillis. It is a no-op when settled.
func (s *RotationState) Advance(dtMillis uint32) {
	s.mu.Lock()
	if !s.decaying || dtMillis == 0 {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	v := s.v
	d := s.decay
	elapsed := s.elapsed
	s.mu.Unlock()

	dPos, next := d.step(v, dtMillis)
	elapsed += dtMillis
	mag := next
	if mag < 0 {
		mag = -mag
	}
	settled := mag < d.MinVelocity || elapsed >= d.MaxMillis

	s.mu.Lock()
	if s.gen != gen {
		// Superseded while stepping; the result must not land.
		s.mu.Unlock()
		return
	}
	s.deg += dPos
	s.v = next
	s.elapsed = elapsed
	if settled {
		s.decaying = false
	}
	s.mu.Unlock()
}
