//go:build !flickgl_fixed

package flickgl

import "testing"

type gridTarget struct {
	w, h int
	pix  []Color
}

func newGridTarget(w, h int) *gridTarget {
	return &gridTarget{w: w, h: h, pix: make([]Color, w*h)}
}

func (t *gridTarget) Size() (w, h int) { return t.w, t.h }

func (t *gridTarget) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.pix[y*t.w+x] = c
}

func (t *gridTarget) Clear(c Color) {
	for i := range t.pix {
		t.pix[i] = c
	}
}

func (t *gridTarget) at(x, y int) Color { return t.pix[y*t.w+x] }

func (t *gridTarget) countSet() int {
	n := 0
	for _, c := range t.pix {
		if c != (Color{}) {
			n++
		}
	}
	return n
}

func TestDrawLineHorizontal(t *testing.T) {
	g := newGridTarget(10, 10)
	DrawLine(g, 1, 1, 5, 1, RGB(255, 0, 0))
	for x := 1; x <= 5; x++ {
		if g.at(x, 1) == (Color{}) {
			t.Fatalf("pixel (%d, 1) not set", x)
		}
	}
	if g.at(6, 1) != (Color{}) {
		t.Fatalf("pixel past endpoint set")
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	g := newGridTarget(10, 10)
	DrawLine(g, 0, 0, 4, 4, RGB(0, 255, 0))
	for i := 0; i <= 4; i++ {
		if g.at(i, i) == (Color{}) {
			t.Fatalf("pixel (%d, %d) not set", i, i)
		}
	}
}

func TestDrawLineClipsOutOfBounds(t *testing.T) {
	g := newGridTarget(4, 4)
	DrawLine(g, -3, -3, 8, 8, RGB(255, 255, 255))
	if g.at(1, 1) == (Color{}) {
		t.Fatalf("in-bounds segment not drawn")
	}
}

func TestFillTriangleEitherWinding(t *testing.T) {
	a := newGridTarget(12, 12)
	FillTriangle(a, 1, 1, 8, 1, 1, 8, RGB(255, 0, 0))
	b := newGridTarget(12, 12)
	FillTriangle(b, 1, 1, 1, 8, 8, 1, RGB(255, 0, 0))

	if a.at(3, 3) == (Color{}) {
		t.Fatalf("interior not filled")
	}
	if a.countSet() != b.countSet() {
		t.Fatalf("windings disagree: %d vs %d pixels", a.countSet(), b.countSet())
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	g := newGridTarget(8, 8)
	FillTriangle(g, 2, 2, 5, 5, 3, 3, RGB(255, 0, 0))
	if n := g.countSet(); n != 0 {
		t.Fatalf("degenerate triangle painted %d pixels", n)
	}
}

func TestFillQuadCoversRect(t *testing.T) {
	g := newGridTarget(10, 10)
	FillQuad(g, 2, 2, 7, 2, 7, 6, 2, 6, RGB(0, 0, 255))
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 7; x++ {
			if g.at(x, y) == (Color{}) {
				t.Fatalf("pixel (%d, %d) not filled", x, y)
			}
		}
	}
	if g.at(8, 4) != (Color{}) {
		t.Fatalf("pixel outside quad filled")
	}
}

func TestStrokeQuadOutline(t *testing.T) {
	g := newGridTarget(10, 10)
	StrokeQuad(g, 1, 1, 8, 1, 8, 8, 1, 8, RGB(255, 255, 255))
	if g.at(1, 1) == (Color{}) || g.at(8, 8) == (Color{}) {
		t.Fatalf("corner not drawn")
	}
	if g.at(4, 4) != (Color{}) {
		t.Fatalf("interior drawn by stroke")
	}
}
