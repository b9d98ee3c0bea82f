// Package tiltcard renders the tilt panel: a flat card that springs toward
// the tapped corner and springs flat again on the next tap. The spring is
// underdamped on purpose; the overshoot is what sells the motion.
package tiltcard

import (
	"image/color"
	"strconv"

	"flick/flickui/flickgl"
	"flick/flickui/gesture"
	"flick/flickui/kernel"
	"flick/flickui/motion"
	"flick/flickui/proto"
	"flick/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const frameIntervalTicks = 33

// Params tune the tap budgets and the spring. Zero fields use defaults.
type Params struct {
	TapMaxMillis uint32
	TapSlopPx    float32

	Frequency  float64 // spring angular frequency
	Damping    float64 // damping ratio, < 1 overshoots
	MaxTiltDeg float32
}

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability

	fb hal.Framebuffer

	font       tinyfont.Fonter
	fontHeight int16

	active bool

	w int
	h int

	r *flickgl.Renderer
	s *flickgl.Scene

	meshID int

	spring  *motion.TiltSpring
	tap     gesture.TapRecognizer
	tilted  bool
	maxTilt float32

	settledDrawn bool
}

func New(disp hal.Display, ep, logCap kernel.Capability, p Params) *Task {
	freq := p.Frequency
	if freq <= 0 {
		freq = 6
	}
	damping := p.Damping
	if damping <= 0 {
		damping = 0.5
	}
	maxTilt := p.MaxTiltDeg
	if maxTilt <= 0 {
		maxTilt = 22
	}
	t := &Task{
		disp:    disp,
		ep:      ep,
		logCap:  logCap,
		meshID:  -1,
		maxTilt: maxTilt,
		spring:  motion.NewTiltSpring(1000/frameIntervalTicks, freq, damping),
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

			case proto.MsgKey:
				if !t.active {
					continue
				}
				_, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
				if !ok || !press {
					continue
				}
				switch r {
				case 'r':
					t.rest()
				case 'w':
					t.toggleWireframe()
				}

			case proto.MsgPanelControl:
				op, ok := proto.DecodePanelControlPayload(msg.Payload())
				if !ok {
					continue
				}
				switch op {
				case proto.PanelResume:
					t.active = true
					t.ensureScene()
					t.settledDrawn = false
				case proto.PanelPause:
					t.active = false
				case proto.PanelReset:
					t.rest()
				}
			}

		case now := <-tickCh:
			if !t.active {
				continue
			}
			if lastFrame != 0 && now-lastFrame < frameIntervalTicks {
				continue
			}
			lastFrame = now
			t.spring.Step()
			if t.spring.Settled() {
				if t.settledDrawn {
					continue
				}
				t.settledDrawn = true
			} else {
				t.settledDrawn = false
			}
			t.render()
		}
	}
}

func (t *Task) ensureScene() {
	if t.s != nil && t.r != nil {
		return
	}

	t.r = flickgl.NewRenderer(t.w, t.h, true)
	t.r.ClearColor = flickgl.RGB(0x12, 0x08, 0x14)
	t.r.SetRenderMode(flickgl.RenderSolidFlat)

	t.s = flickgl.NewScene(1)
	t.s.Camera.Position = flickgl.V3(0, 0, flickgl.ScalarFromFloat32(3.0))
	t.s.Camera.Target = flickgl.V3(0, 0, 0)
	t.s.Camera.Up = flickgl.V3(0, flickgl.ScalarFromFloat32(1), 0)
	t.s.Camera.FOVYRad = flickgl.ScalarFromFloat32(1.0)
	t.s.Camera.Near = flickgl.ScalarFromFloat32(0.05)
	t.s.Camera.Far = flickgl.ScalarFromFloat32(20)

	t.s.Light.Mode = flickgl.LightAmbientDirectional
	t.s.Light.Ambient = flickgl.ScalarFromFloat32(0.45)
	t.s.Light.Dir = flickgl.Normalize(flickgl.V3(flickgl.ScalarFromFloat32(0.2), flickgl.ScalarFromFloat32(0.5), flickgl.ScalarFromFloat32(0.85)))
	t.s.Light.DirAmount = flickgl.ScalarFromFloat32(0.55)

	mesh := flickgl.CardMesh(flickgl.ScalarFromFloat32(2.2), flickgl.ScalarFromFloat32(1.5), flickgl.RGB(0xE8, 0xC8, 0x5A))
	t.meshID = t.s.AddMesh(mesh)
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
	if !t.tap.Handle(ev) {
		return
	}

	if t.tilted {
		t.spring.SetTarget(0, 0)
		t.tilted = false
		t.settledDrawn = false
		t.logLine(ctx, "tilt: rest")
		return
	}

	// Tilt as if the card were pressed down at the tap point.
	cx := float32(t.w) / 2
	cy := float32(t.h) / 2
	rx := clampTilt((cy-ev.Y)/cy*t.maxTilt, t.maxTilt)
	ry := clampTilt((ev.X-cx)/cx*t.maxTilt, t.maxTilt)
	t.spring.SetTarget(rx, ry)
	t.tilted = true
	t.settledDrawn = false
	t.logLine(ctx, "tilt: press "+strconv.Itoa(int(rx))+" "+strconv.Itoa(int(ry)))
}

func (t *Task) toggleWireframe() {
	if t.r == nil {
		return
	}
	if t.r.Mode == flickgl.RenderWireframe {
		t.r.SetRenderMode(flickgl.RenderSolidFlat)
	} else {
		t.r.SetRenderMode(flickgl.RenderWireframe)
	}
	t.settledDrawn = false
}

func (t *Task) rest() {
	t.spring.SetTarget(0, 0)
	t.spring.Snap()
	t.tilted = false
	t.settledDrawn = false
}

func (t *Task) render() {
	t.ensureScene()
	if t.fb == nil || t.r == nil || t.s == nil {
		return
	}

	rx := flickgl.Radians(flickgl.ScalarFromFloat32(t.spring.X()))
	ry := flickgl.Radians(flickgl.ScalarFromFloat32(t.spring.Y()))
	model := flickgl.Mat4Mul(flickgl.Mat4RotateX(rx), flickgl.Mat4RotateY(ry))
	t.s.UpdateMeshTransform(t.meshID, model)

	target := &flickgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.w,
		H:      t.h,
	}
	t.r.Render(target, t.s)

	t.drawText(target, 6, 6, "tilt  tap to spring  w wireframe  r reset", color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF})
	status := "x " + strconv.Itoa(int(t.spring.X())) + "  y " + strconv.Itoa(int(t.spring.Y())) + " deg"
	t.drawText(target, 6, 18, status, color.RGBA{R: 0xB8, G: 0xA0, B: 0xC0, A: 0xFF})

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

func clampTilt(v, max float32) float32 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
