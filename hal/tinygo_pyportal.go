//go:build tinygo && baremetal && pyportal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/touch/resistive"
)

type pyPortalHAL struct {
	logger *serialLogger
	fb     *pyPortalFramebuffer
	kbd    Keyboard
	ptr    *touchPointer
	t      *tinyGoTime
}

// New returns a PyPortal HAL implementation.
//
// Display: ILI9341 over the parallel bus, 320x240 landscape. Touch: 4-wire
// resistive panel polled through the ADC, surfaced as pointer ID 0.
func New() HAL {
	machine.InitADC()

	return &pyPortalHAL{
		logger: &serialLogger{},
		fb:     newPyPortalFramebuffer(),
		kbd:    &stubKeyboard{},
		ptr:    newTouchPointer(),
		t:      newTinyGoTime(),
	}
}

func (h *pyPortalHAL) Logger() Logger   { return h.logger }
func (h *pyPortalHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *pyPortalHAL) Input() Input     { return tinyGoInput{kbd: h.kbd, ptr: h.ptr} }
func (h *pyPortalHAL) Time() Time       { return h.t }

const (
	pyPortalWidth  = 320
	pyPortalHeight = 240

	// Present sends the framebuffer in bands to keep the bounce buffer small.
	presentBandRows = 8
)

type pyPortalFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd   *ili9341.Device
	txBuf []byte
}

func newPyPortalFramebuffer() *pyPortalFramebuffer {
	display := ili9341.NewParallel(
		machine.LCD_DATA0,
		machine.TFT_WR,
		machine.TFT_DC,
		machine.TFT_CS,
		machine.TFT_RESET,
		machine.TFT_RD,
	)

	backlight := machine.TFT_BACKLIGHT
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})

	display.Configure(ili9341.Config{})
	display.SetRotation(ili9341.Rotation270)
	display.FillScreen(color.RGBA{A: 255})

	backlight.High()

	return &pyPortalFramebuffer{
		w:      pyPortalWidth,
		h:      pyPortalHeight,
		stride: pyPortalWidth * 2,
		buf:    make([]byte, pyPortalWidth*pyPortalHeight*2),
		lcd:    display,
		txBuf:  make([]byte, pyPortalWidth*presentBandRows*2),
	}
}

func (f *pyPortalFramebuffer) Width() int          { return f.w }
func (f *pyPortalFramebuffer) Height() int         { return f.h }
func (f *pyPortalFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *pyPortalFramebuffer) StrideBytes() int    { return f.stride }
func (f *pyPortalFramebuffer) Buffer() []byte      { return f.buf }

func (f *pyPortalFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}

func (f *pyPortalFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	// The driver wants big-endian RGB565; the buffer is little-endian.
	for y := 0; y < f.h; y += presentBandRows {
		rows := presentBandRows
		if y+rows > f.h {
			rows = f.h - y
		}
		n := f.w * rows * 2
		src := f.buf[y*f.stride:]
		for i := 0; i+1 < n; i += 2 {
			f.txBuf[i] = src[i+1]
			f.txBuf[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.txBuf[:n], int16(f.w), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}

// Resistive panel calibration. Raw ADC corners for the stock PyPortal
// touchscreen; Y runs opposite to screen rows.
const (
	touchRawX0 = 7300
	touchRawX1 = 57100
	touchRawY0 = 55000
	touchRawY1 = 9100

	touchPressure = 100
)

type touchPointer struct {
	ch chan PointerEvent
}

func newTouchPointer() *touchPointer {
	p := &touchPointer{ch: make(chan PointerEvent, 64)}

	panel := new(resistive.FourWire)
	panel.Configure(&resistive.FourWireConfig{
		YP: machine.TOUCH_YD,
		YM: machine.TOUCH_YU,
		XP: machine.TOUCH_XR,
		XM: machine.TOUCH_XL,
	})

	go func() {
		var down bool
		var lastX, lastY int16
		for {
			pt := panel.ReadTouchPoint()
			pressed := pt.Z>>6 > touchPressure
			switch {
			case pressed && !down:
				lastX = mapTouch(pt.X, touchRawX0, touchRawX1, pyPortalWidth)
				lastY = mapTouch(pt.Y, touchRawY0, touchRawY1, pyPortalHeight)
				down = true
				p.emit(PointerEvent{ID: 0, Phase: PointerDown, X: lastX, Y: lastY})
			case pressed:
				x := mapTouch(pt.X, touchRawX0, touchRawX1, pyPortalWidth)
				y := mapTouch(pt.Y, touchRawY0, touchRawY1, pyPortalHeight)
				if x != lastX || y != lastY {
					lastX, lastY = x, y
					p.emit(PointerEvent{ID: 0, Phase: PointerMove, X: x, Y: y})
				}
			case down:
				down = false
				p.emit(PointerEvent{ID: 0, Phase: PointerUp, X: lastX, Y: lastY})
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	return p
}

func (p *touchPointer) Events() <-chan PointerEvent { return p.ch }
func (p *touchPointer) Wheel() <-chan WheelEvent    { return nil }

func (p *touchPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

func mapTouch(raw, r0, r1, size int) int16 {
	den := r1 - r0
	if den == 0 {
		return 0
	}
	v := (raw - r0) * size / den
	if v < 0 {
		v = 0
	}
	if v >= size {
		v = size - 1
	}
	return int16(v)
}
