//go:build !tinygo && !cgo

package hal

import "errors"

// Without cgo there is no ebiten window, so the desktop build only works
// headless: the keyboard and pointer never produce events on their own and
// scripted input goes through inject.

func RunWindow(_ func(h HAL) func() error) error {
	return errors.New("windowed mode needs cgo: rebuild with CGO_ENABLED=1 or pass -headless")
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {}

type hostPointer struct {
	ch    chan PointerEvent
	wheel chan WheelEvent
}

func newHostPointer() *hostPointer {
	return &hostPointer{
		ch:    make(chan PointerEvent, 64),
		wheel: make(chan WheelEvent, 16),
	}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }
func (p *hostPointer) Wheel() <-chan WheelEvent    { return p.wheel }

func (p *hostPointer) poll() {}

func (p *hostPointer) inject(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}
