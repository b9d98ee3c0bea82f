package flickgl

// Color is an RGBA color, 8 bits per channel. Targets that cannot represent
// alpha (RGB565) drop it on write.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// Scale darkens the color by a light intensity in [0, 1], keeping alpha.
func (c Color) Scale(intensity Scalar) Color {
	f := scalarToF32(intensity)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
