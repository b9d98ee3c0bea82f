package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerPhase is the contact state carried by a pointer event.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerEvent is one touch or mouse transition.
//
// ID distinguishes simultaneous contacts; a mouse is always ID 0.
type PointerEvent struct {
	ID    uint8
	Phase PointerPhase
	X, Y  int16
}

// WheelEvent is a scroll step at a cursor position (host only).
type WheelEvent struct {
	Dy   int8
	X, Y int16
}

// Pointer provides touch/mouse events (best-effort on each platform).
//
// Wheel may return nil on platforms without one.
type Pointer interface {
	Events() <-chan PointerEvent
	Wheel() <-chan WheelEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream.
//
// A tick is one millisecond on every platform; higher-level timers live in
// userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the panels and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
