// Package spinbox renders the fling panel: a cube spun by vertical drags.
// Releasing a drag hands the estimated velocity to an exponential decay, so
// the cube keeps spinning and coasts to a stop.
package spinbox

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

	rot  *motion.RotationState
	drag *gesture.SpinDrag

	lastStep uint64
}

func New(disp hal.Display, ep, logCap kernel.Capability, decay motion.Decay) *Task {
	return &Task{
		disp:   disp,
		ep:     ep,
		logCap: logCap,
		meshID: -1,
		rot:    motion.NewRotationState(decay),
	}
}

// Rotation exposes the angle holder, mainly for the host integration loop.
func (t *Task) Rotation() *motion.RotationState { return t.rot }

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
	// A full-height drag is one revolution.
	t.drag = gesture.NewSpinDrag(t.rot, float32(t.h))

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
				if t.handleKey(msg.Payload()) {
					t.render()
				}

			case proto.MsgPanelControl:
				op, ok := proto.DecodePanelControlPayload(msg.Payload())
				if !ok {
					continue
				}
				t.control(op)
			}

		case now := <-tickCh:
			if !t.active {
				continue
			}
			if lastFrame != 0 && now-lastFrame < frameIntervalTicks {
				continue
			}
			lastFrame = now
			t.step(ctx, now)
			t.render()
		}
	}
}

func (t *Task) control(op proto.PanelOp) {
	switch op {
	case proto.PanelResume:
		if t.active {
			return
		}
		t.active = true
		t.ensureScene()
		// Paused time must not feed the decay integral.
		t.lastStep = 0
		t.render()
	case proto.PanelPause:
		t.active = false
	case proto.PanelReset:
		t.rot.Set(0)
	}
}

func (t *Task) ensureScene() {
	if t.s != nil && t.r != nil {
		return
	}

	t.r = flickgl.NewRenderer(t.w, t.h, true)
	t.r.ClearColor = flickgl.RGB(0x05, 0x08, 0x12)
	t.r.SetRenderMode(flickgl.RenderSolidVertexColor)

	t.s = flickgl.NewScene(1)
	t.s.Camera.Position = flickgl.V3(0, flickgl.ScalarFromFloat32(0.2), flickgl.ScalarFromFloat32(3.2))
	t.s.Camera.Target = flickgl.V3(0, 0, 0)
	t.s.Camera.Up = flickgl.V3(0, flickgl.ScalarFromFloat32(1), 0)
	t.s.Camera.FOVYRad = flickgl.ScalarFromFloat32(1.0)
	t.s.Camera.Near = flickgl.ScalarFromFloat32(0.05)
	t.s.Camera.Far = flickgl.ScalarFromFloat32(20)

	t.s.Light.Mode = flickgl.LightAmbientDirectional
	t.s.Light.Ambient = flickgl.ScalarFromFloat32(0.30)
	t.s.Light.Dir = flickgl.Normalize(flickgl.V3(flickgl.ScalarFromFloat32(-0.4), flickgl.ScalarFromFloat32(0.9), flickgl.ScalarFromFloat32(0.3)))
	t.s.Light.DirAmount = flickgl.ScalarFromFloat32(0.70)

	mesh := flickgl.CubeMesh(flickgl.ScalarFromFloat32(1.4), [6]flickgl.Color{
		flickgl.RGB(0xE8, 0x5D, 0x4F),
		flickgl.RGB(0xF2, 0xA0, 0x3D),
		flickgl.RGB(0x4F, 0xB0, 0x6D),
		flickgl.RGB(0xD8, 0xD2, 0x4A),
		flickgl.RGB(0x4F, 0x86, 0xE8),
		flickgl.RGB(0x9A, 0x5F, 0xE0),
	})
	t.meshID = t.s.AddMesh(mesh)
}

func (t *Task) pointer(ctx *kernel.Context, b []byte) {
	phase, id, x, y, millis, ok := proto.DecodePointerPayload(b)
	if !ok {
		return
	}
	was := t.drag.Dragging()
	t.drag.Handle(gesture.PointerEvent{
		ID:     int(id),
		Phase:  gesture.Phase(phase),
		X:      float32(x),
		Y:      float32(y),
		Millis: millis,
	})
	if was && !t.drag.Dragging() && t.rot.Decaying() {
		t.logLine(ctx, "spin: fling "+strconv.Itoa(int(t.rot.Velocity()))+" deg/s")
	}
}

func (t *Task) handleKey(b []byte) bool {
	_, press, r, ok := proto.DecodeKeyPayload(b)
	if !ok || !press {
		return false
	}
	switch r {
	case 'w':
		if t.r == nil {
			return false
		}
		if t.r.Mode == flickgl.RenderWireframe {
			t.r.SetRenderMode(flickgl.RenderSolidVertexColor)
		} else {
			t.r.SetRenderMode(flickgl.RenderWireframe)
		}
		return true
	case 'r':
		t.rot.Set(0)
		return true
	}
	return false
}

func (t *Task) step(ctx *kernel.Context, now uint64) {
	if t.lastStep == 0 {
		t.lastStep = now
		return
	}
	dt := uint32(now - t.lastStep)
	t.lastStep = now

	was := t.rot.Decaying()
	t.rot.Advance(dt)
	if was && !t.rot.Decaying() {
		t.logLine(ctx, "spin: settled at "+strconv.Itoa(int(t.rot.Current()))+" deg")
	}
}

func (t *Task) render() {
	t.ensureScene()
	if t.fb == nil || t.r == nil || t.s == nil {
		return
	}

	angle := flickgl.Radians(flickgl.ScalarFromFloat32(t.rot.Current()))
	yaw := flickgl.ScalarFromFloat32(0.5)
	model := flickgl.Mat4Mul(flickgl.Mat4RotateX(angle), flickgl.Mat4RotateY(yaw))
	t.s.UpdateMeshTransform(t.meshID, model)

	target := &flickgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.w,
		H:      t.h,
	}
	t.r.Render(target, t.s)

	t.drawText(6, 6, "spin  w wireframe  r reset", color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF})
	deg := int(t.rot.Current()) % 360
	if deg < 0 {
		deg += 360
	}
	status := "a " + strconv.Itoa(deg) + " deg  v " + strconv.Itoa(int(t.rot.Velocity())) + " deg/s"
	t.drawText(6, 18, status, color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF})

	_ = t.fb.Present()
}

func (t *Task) logLine(ctx *kernel.Context, line string) {
	if !t.logCap.Valid() {
		return
	}
	ctx.SendToCapResult(t.logCap, uint16(proto.MsgLogLine), []byte(line), kernel.Capability{})
}

func (t *Task) drawText(x, y int, s string, c color.RGBA) {
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	d := &fbDisplayer{fb: t.fb}
	tinyfont.WriteLine(d, t.font, int16(x), int16(y)+t.fontHeight, s, c)
}

type fbDisplayer struct {
	fb hal.Framebuffer
}

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}
