package hal

// RGB565 helpers shared by every framebuffer implementation. The panels and
// the embedded display both speak little-endian RGB565, so packing lives
// here rather than per target.

func rgb565(r, g, b uint8) uint16 {
	return (uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | uint16(b>>3)&0x1F
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(((p >> 11) & 0x1F) * 255 / 31)
	g = uint8(((p >> 5) & 0x3F) * 255 / 63)
	b = uint8((p & 0x1F) * 255 / 31)
	return r, g, b
}

// fillRGB565 floods a framebuffer byte slice with one pixel value.
func fillRGB565(buf []byte, p uint16) {
	lo := byte(p)
	hi := byte(p >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}
