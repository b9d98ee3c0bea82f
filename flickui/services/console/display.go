package console

import (
	"image/color"

	"flick/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts a hal.Framebuffer to tinyterm's Displayer contract,
// including the optional ScrollUp fast path for software scrolling.
type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) ok() bool {
	return d.fb != nil && d.fb.Format() == hal.PixelFormatRGB565 && d.fb.Buffer() != nil
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.ok() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pix := rgb565Of(c)
	buf[off] = byte(pix)
	buf[off+1] = byte(pix >> 8)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// ScrollUp shifts the framebuffer content up by the given pixel rows and
// clears the exposed band at the bottom.
func (d *fbDisplay) ScrollUp(lines int16, bg color.RGBA) error {
	if !d.ok() || lines <= 0 {
		return nil
	}

	w, h := d.fb.Width(), d.fb.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	n := int(lines)
	if n >= h {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	keep := (h - n) * stride
	src := n * stride
	if src+keep > len(buf) {
		keep = len(buf) - src
	}
	if keep <= 0 {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}
	copy(buf[:keep], buf[src:src+keep])

	return d.FillRectangle(0, int16(h-n), int16(w), int16(n), bg)
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.ok() {
		return nil
	}

	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	pix := rgb565Of(c)
	lo, hi := byte(pix), byte(pix>>8)
	for py := y0; py < y1; py++ {
		start := py*stride + x0*2
		end := py*stride + x1*2
		if end > len(buf) {
			end = len(buf)
		}
		if start >= end {
			continue
		}
		row := buf[start:end]
		for i := 0; i+1 < len(row); i += 2 {
			row[i] = lo
			row[i+1] = hi
		}
	}
	return nil
}

// SetScroll is hardware scrolling; the terminal runs with software scroll.
func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	return nil
}

func rgb565Of(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
