// Package pinchbox renders the transform panel: a flat card driven by pinch
// gestures. Two pointers scale, rotate and pan it; a single pointer pans; the
// mouse wheel zooms. A double tap puts the card back.
package pinchbox

import (
	"image/color"
	"strconv"

	"flick/flickui/flickgl"
	"flick/flickui/gesture"
	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	frameIntervalTicks = 33

	minScale       = 0.25
	maxScale       = 8
	wheelFactor    = 1.1
	doubleTapMs    = 400
	panLimitFactor = 2 // pan is clamped to this many screen sizes
)

// Params are the gesture budgets, zero fields use recognizer defaults.
type Params struct {
	TapMaxMillis uint32
	TapSlopPx    float32
}

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability

	fb hal.Framebuffer

	font       tinyfont.Fonter
	fontHeight int16

	active bool
	dirty  bool

	w int
	h int

	tracker   gesture.PinchTracker
	tap       gesture.TapRecognizer
	lastTapAt uint32

	scale float32
	rot   float32 // radians
	offX  float32
	offY  float32
}

func New(disp hal.Display, ep, logCap kernel.Capability, p Params) *Task {
	t := &Task{
		disp:   disp,
		ep:     ep,
		logCap: logCap,
		scale:  1,
	}
	t.tap.MaxMillis = p.TapMaxMillis
	t.tap.SlopPx = p.TapSlopPx
	return t
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}

	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	t.font = &proggy.TinySZ8pt7b
	t.fontHeight = 10

	t.w = t.fb.Width()
	t.h = t.fb.Height()
	if t.w <= 0 || t.h <= 0 {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			next := ctx.WaitTick(last)
			if next <= last {
				return
			}
			last = next
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	var lastFrame uint64

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgPointer:
				if !t.active {
					continue
				}
				t.pointer(ctx, msg.Payload())

			case proto.MsgWheel:
				if !t.active {
					continue
				}
				dy, _, _, ok := proto.DecodeWheelPayload(msg.Payload())
				if !ok || dy == 0 {
					continue
				}
				if dy > 0 {
					t.setScale(t.scale * wheelFactor)
				} else {
					t.setScale(t.scale / wheelFactor)
				}

			case proto.MsgKey:
				if !t.active {
					continue
				}
				_, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
				if ok && press && r == 'r' {
					t.resetTransform()
				}

			case proto.MsgPanelControl:
				op, ok := proto.DecodePanelControlPayload(msg.Payload())
				if !ok {
					continue
				}
				switch op {
				case proto.PanelResume:
					t.active = true
					t.dirty = true
				case proto.PanelPause:
					t.active = false
				case proto.PanelReset:
					t.resetTransform()
				}
			}

		case now := <-tickCh:
			if !t.active || !t.dirty {
				continue
			}
			if lastFrame != 0 && now-lastFrame < frameIntervalTicks {
				continue
			}
			lastFrame = now
			t.render()
			t.dirty = false
		}
	}
}

func (t *Task) pointer(ctx *kernel.Context, b []byte) {
	phase, id, x, y, millis, ok := proto.DecodePointerPayload(b)
	if !ok {
		return
	}
	ev := gesture.PointerEvent{
		ID:     int(id),
		Phase:  gesture.Phase(phase),
		X:      float32(x),
		Y:      float32(y),
		Millis: millis,
	}

	if upd, moved := t.tracker.Handle(ev); moved {
		t.apply(upd)
		t.dirty = true
	}

	if t.tap.Handle(ev) {
		if t.lastTapAt != 0 && millis-t.lastTapAt <= doubleTapMs {
			t.resetTransform()
			t.logLine(ctx, "pinch: reset")
			t.lastTapAt = 0
		} else {
			t.lastTapAt = millis
		}
	}
}

func (t *Task) apply(u gesture.PinchUpdate) {
	t.setScale(t.scale * (1 + u.ScaleDelta))
	t.rot += u.RotDelta
	limX := float32(t.w) * panLimitFactor
	limY := float32(t.h) * panLimitFactor
	t.offX = clampF32(t.offX+u.PanX, -limX, limX)
	t.offY = clampF32(t.offY+u.PanY, -limY, limY)
}

func (t *Task) setScale(s float32) {
	t.scale = clampF32(s, minScale, maxScale)
	t.dirty = true
}

func (t *Task) resetTransform() {
	t.scale = 1
	t.rot = 0
	t.offX = 0
	t.offY = 0
	t.dirty = true
}

func (t *Task) render() {
	target := &flickgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.w,
		H:      t.h,
	}
	target.Clear(flickgl.RGB(0x07, 0x10, 0x0B))

	cx := float32(t.w)/2 + t.offX
	cy := float32(t.h)/2 + t.offY
	hw := float32(t.w) / 6
	hh := float32(t.h) / 6

	rs := flickgl.Mat3Mul(
		flickgl.Mat3Rotate(flickgl.ScalarFromFloat32(t.rot)),
		flickgl.Mat3Scale(flickgl.ScalarFromFloat32(t.scale), flickgl.ScalarFromFloat32(t.scale)),
	)
	m := flickgl.Mat3About(flickgl.ScalarFromFloat32(cx), flickgl.ScalarFromFloat32(cy), rs)

	base := [4][2]float32{
		{cx - hw, cy - hh},
		{cx + hw, cy - hh},
		{cx + hw, cy + hh},
		{cx - hw, cy + hh},
	}
	var sx, sy [4]int
	for i := range base {
		px, py := m.Apply(flickgl.ScalarFromFloat32(base[i][0]), flickgl.ScalarFromFloat32(base[i][1]))
		sx[i] = int(flickgl.ScalarToFloat32(px))
		sy[i] = int(flickgl.ScalarToFloat32(py))
	}

	flickgl.FillQuad(target, sx[0], sy[0], sx[1], sy[1], sx[2], sy[2], sx[3], sy[3], flickgl.RGB(0x2E, 0x7D, 0x5B))
	flickgl.StrokeQuad(target, sx[0], sy[0], sx[1], sy[1], sx[2], sy[2], sx[3], sy[3], flickgl.RGB(0x9F, 0xE8, 0xC4))
	// Accent on the top edge keeps the rotation readable.
	flickgl.DrawLine(target, sx[0], sy[0], sx[1], sy[1], flickgl.RGB(0xF2, 0xD9, 0x4E))

	t.drawText(target, 6, 6, "pinch  drag pan  wheel zoom  r reset", color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF})
	status := "s " + strconv.FormatFloat(float64(t.scale), 'f', 2, 32) +
		"  r " + strconv.Itoa(int(t.rot*180/3.14159265)) + " deg"
	t.drawText(target, 6, 18, status, color.RGBA{R: 0x90, G: 0xB8, B: 0xA0, A: 0xFF})

	_ = t.fb.Present()
}

func (t *Task) drawText(target *flickgl.RGB565Target, x, y int, s string, c color.RGBA) {
	d := &textTarget{t: target}
	tinyfont.WriteLine(d, t.font, int16(x), int16(y)+t.fontHeight, s, c)
}

func (t *Task) logLine(ctx *kernel.Context, line string) {
	if !t.logCap.Valid() {
		return
	}
	ctx.SendToCapResult(t.logCap, uint16(proto.MsgLogLine), []byte(line), kernel.Capability{})
}

// textTarget narrows an RGB565Target to the displayer shape tinyfont wants.
type textTarget struct {
	t *flickgl.RGB565Target
}

func (d *textTarget) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *textTarget) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), flickgl.RGB(c.R, c.G, c.B))
}

func (d *textTarget) Display() error { return nil }

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
