//go:build tinygo && !baremetal

package hal

import "time"

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. The framebuffer exists but is never presented anywhere.
func New() HAL {
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		fb:     newTinyGoHostFramebuffer(320, 240),
		t:      newTinyGoHostTime(),
	}
}

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	fb     *tinyGoHostFramebuffer
	t      *tinyGoHostTime
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return tinyGoHostInput{} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostInput struct{}

func (tinyGoHostInput) Keyboard() Keyboard { return tinyGoHostKeyboard{} }
func (tinyGoHostInput) Pointer() Pointer   { return tinyGoHostPointer{} }

type tinyGoHostKeyboard struct{}

func (tinyGoHostKeyboard) Events() <-chan KeyEvent { return nil }

type tinyGoHostPointer struct{}

func (tinyGoHostPointer) Events() <-chan PointerEvent { return nil }
func (tinyGoHostPointer) Wheel() <-chan WheelEvent    { return nil }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) { println(s) }
func (l *tinyGoHostLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
}

func newTinyGoHostFramebuffer(w, h int) *tinyGoHostFramebuffer {
	return &tinyGoHostFramebuffer{
		w:      w,
		h:      h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
	}
}

func (f *tinyGoHostFramebuffer) Width() int          { return f.w }
func (f *tinyGoHostFramebuffer) Height() int         { return f.h }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *tinyGoHostFramebuffer) StrideBytes() int    { return f.stride }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf }
func (f *tinyGoHostFramebuffer) Present() error      { return nil }

func (f *tinyGoHostFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}
