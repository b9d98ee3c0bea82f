package flickgl

// Screen-space primitives shared by the 3D pipeline and the flat 2D panels.
// Coordinates are pixels; the target clips out-of-bounds writes.

// DrawLine draws a line with Bresenham's algorithm.
func DrawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillTriangle fills a triangle with a solid color, accepting either winding.
func FillTriangle(t Target, x0, y0, x1, y1, x2, y2 int, c Color) {
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if edgeFn(x0, y0, x1, y1, x2, y2) < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	if edgeFn(x0, y0, x1, y1, x2, y2) == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

// FillQuad fills a convex quad given in corner order.
func FillQuad(t Target, x0, y0, x1, y1, x2, y2, x3, y3 int, c Color) {
	FillTriangle(t, x0, y0, x1, y1, x2, y2, c)
	FillTriangle(t, x0, y0, x2, y2, x3, y3, c)
}

// StrokeQuad outlines a quad given in corner order.
func StrokeQuad(t Target, x0, y0, x1, y1, x2, y2, x3, y3 int, c Color) {
	DrawLine(t, x0, y0, x1, y1, c)
	DrawLine(t, x1, y1, x2, y2, c)
	DrawLine(t, x2, y2, x3, y3, c)
	DrawLine(t, x3, y3, x0, y0, c)
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
