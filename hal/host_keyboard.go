//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

import "github.com/hajimehoshi/ebiten/v2/inpututil"

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {
	emit := func(code KeyCode, press bool) {
		select {
		case k.ch <- KeyEvent{Code: code, Press: press}:
		default:
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		select {
		case k.ch <- KeyEvent{Press: true, Rune: 0x03}:
		default:
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		select {
		case k.ch <- KeyEvent{Press: true, Rune: r}:
		default:
		}
	}

	// Arrows and Tab cycle panels; letters and digits arrive as text input.
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		emit(KeyUp, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowUp) {
		emit(KeyUp, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		emit(KeyDown, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowDown) {
		emit(KeyDown, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		emit(KeyLeft, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowLeft) {
		emit(KeyLeft, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		emit(KeyRight, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowRight) {
		emit(KeyRight, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		emit(KeyEnter, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyEnter) {
		emit(KeyEnter, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		emit(KeyEscape, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
		emit(KeyEscape, false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		emit(KeyTab, true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyTab) {
		emit(KeyTab, false)
	}
}
