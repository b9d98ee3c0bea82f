// Package gesture turns raw pointer streams into recognized interactions:
// taps, drags, pinches, and the velocity estimates that feed fling
// animations.
//
// Recognizers are plain state machines owned by a single task; they are fed
// one PointerEvent at a time and never block.
package gesture

// Phase classifies a pointer transition.
type Phase uint8

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is one observed pointer transition.
//
// Millis is a monotonic millisecond timestamp; X and Y are in the
// coordinate space of whatever region the recognizer watches.
type PointerEvent struct {
	ID     int
	Phase  Phase
	X, Y   float32
	Millis uint32
}
