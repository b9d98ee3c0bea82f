//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

import "github.com/hajimehoshi/ebiten/v2/inpututil"

// hostPointer folds the ebiten mouse and touch state into pointer
// transitions. The mouse is pointer ID 0; touches claim IDs 1..9.
type hostPointer struct {
	ch    chan PointerEvent
	wheel chan WheelEvent

	mouseDown bool
	mouseX    int16
	mouseY    int16

	slots map[ebiten.TouchID]uint8
	last  [10][2]int16
	used  [10]bool

	ids []ebiten.TouchID
}

func newHostPointer() *hostPointer {
	return &hostPointer{
		ch:    make(chan PointerEvent, 64),
		wheel: make(chan WheelEvent, 16),
		slots: make(map[ebiten.TouchID]uint8),
	}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }
func (p *hostPointer) Wheel() <-chan WheelEvent    { return p.wheel }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

func (p *hostPointer) poll() {
	p.pollMouse()
	p.pollTouches()
	p.pollWheel()
}

func (p *hostPointer) pollMouse() {
	x, y := ebiten.CursorPosition()
	px, py := int16(x), int16(y)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case down && !p.mouseDown:
		p.emit(PointerEvent{ID: 0, Phase: PointerDown, X: px, Y: py})
	case down && (px != p.mouseX || py != p.mouseY):
		p.emit(PointerEvent{ID: 0, Phase: PointerMove, X: px, Y: py})
	case !down && p.mouseDown:
		p.emit(PointerEvent{ID: 0, Phase: PointerUp, X: px, Y: py})
	}

	p.mouseDown = down
	p.mouseX, p.mouseY = px, py
}

func (p *hostPointer) pollTouches() {
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		slot, ok := p.slots[id]
		if !ok {
			continue
		}
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.emit(PointerEvent{ID: slot, Phase: PointerUp, X: int16(x), Y: int16(y)})
		p.used[slot] = false
		delete(p.slots, id)
	}

	p.ids = ebiten.AppendTouchIDs(p.ids[:0])
	for _, id := range p.ids {
		x, y := ebiten.TouchPosition(id)
		px, py := int16(x), int16(y)

		slot, ok := p.slots[id]
		if !ok {
			slot = p.claimSlot()
			if slot == 0 {
				continue
			}
			p.slots[id] = slot
			p.last[slot] = [2]int16{px, py}
			p.emit(PointerEvent{ID: slot, Phase: PointerDown, X: px, Y: py})
			continue
		}
		if p.last[slot] != [2]int16{px, py} {
			p.last[slot] = [2]int16{px, py}
			p.emit(PointerEvent{ID: slot, Phase: PointerMove, X: px, Y: py})
		}
	}
}

func (p *hostPointer) claimSlot() uint8 {
	for s := uint8(1); s < uint8(len(p.used)); s++ {
		if !p.used[s] {
			p.used[s] = true
			return s
		}
	}
	return 0
}

func (p *hostPointer) pollWheel() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	step := int8(1)
	if dy < 0 {
		step = -1
	}
	x, y := ebiten.CursorPosition()
	select {
	case p.wheel <- WheelEvent{Dy: step, X: int16(x), Y: int16(y)}:
	default:
	}
}

// inject feeds a synthetic event, used by the headless runner.
func (p *hostPointer) inject(ev PointerEvent) {
	p.emit(ev)
}
