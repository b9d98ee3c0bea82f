//go:build !flickgl_fixed

package flickgl

import "testing"

func renderCube(mode RenderMode) (*RGB565Target, int) {
	w, h := 64, 64
	target := &RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	r := NewRenderer(w, h, true)
	r.Mode = mode
	s := NewScene(1)
	faces := [6]Color{
		RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255),
		RGB(255, 255, 0), RGB(0, 255, 255), RGB(255, 0, 255),
	}
	s.AddMesh(CubeMesh(1, faces))
	r.Render(target, s)

	painted := 0
	for i := 0; i+1 < len(target.Buf); i += 2 {
		if target.Buf[i] != 0 || target.Buf[i+1] != 0 {
			painted++
		}
	}
	return target, painted
}

func TestRendererSolidCubePaints(t *testing.T) {
	target, painted := renderCube(RenderSolidVertexColor)
	if painted == 0 {
		t.Fatalf("expected cube pixels, got none")
	}
	// Center of the front face.
	off := 32*target.Stride + 32*2
	if target.Buf[off] == 0 && target.Buf[off+1] == 0 {
		t.Fatalf("center pixel not painted")
	}
}

func TestRendererWireframeSparser(t *testing.T) {
	_, wire := renderCube(RenderWireframe)
	_, solid := renderCube(RenderSolidFlat)
	if wire == 0 {
		t.Fatalf("wireframe painted nothing")
	}
	if wire >= solid {
		t.Fatalf("wireframe (%d px) not sparser than solid (%d px)", wire, solid)
	}
}

func TestRendererDisabledMeshSkipped(t *testing.T) {
	w, h := 32, 32
	target := &RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	r := NewRenderer(w, h, true)
	s := NewScene(1)
	id := s.AddMesh(CardMesh(1, 1, RGB(255, 255, 255)))
	s.SetMeshEnabled(id, false)
	r.Render(target, s)
	for i, b := range target.Buf {
		if b != 0 {
			t.Fatalf("byte %d painted for disabled mesh", i)
		}
	}
}

// renderLitCard flat-shades a white card under a head-on light with the
// given model transform and returns the 5-bit red value at the center.
func renderLitCard(model Mat4) uint16 {
	w, h := 32, 32
	target := &RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	r := NewRenderer(w, h, true)
	r.Mode = RenderSolidFlat
	s := NewScene(1)
	s.Light.Dir = V3(0, 0, -1)

	card := CardMesh(1.5, 1.5, RGB(255, 255, 255))
	card.Transform = model
	s.AddMesh(card)
	r.Render(target, s)

	off := 16*target.Stride + 16*2
	p := uint16(target.Buf[off]) | uint16(target.Buf[off+1])<<8
	return (p >> 11) & 0x1F
}

func TestFlatShadingFollowsModelRotation(t *testing.T) {
	facing := renderLitCard(Mat4Identity())
	tilted := renderLitCard(Mat4RotateY(Radians(60)))
	if facing == 0 {
		t.Fatal("front-facing card not painted")
	}
	if tilted == 0 {
		t.Fatal("tilted card not painted")
	}
	// Tilted away from a head-on light the directional term drops with the
	// cosine, so the card must darken as it turns.
	if tilted >= facing {
		t.Fatalf("expected tilted card darker: facing=%d tilted=%d", facing, tilted)
	}
}

func TestRendererDepthOcclusion(t *testing.T) {
	w, h := 32, 32
	target := &RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	r := NewRenderer(w, h, true)
	r.Mode = RenderSolidVertexColor
	s := NewScene(2)

	far := CardMesh(1.5, 1.5, RGB(255, 0, 0))
	s.AddMesh(far)

	near := CardMesh(1.5, 1.5, RGB(0, 255, 0))
	near.Transform = Mat4Translate(V3(0, 0, 0.5))
	s.AddMesh(near)

	r.Render(target, s)

	off := 16*target.Stride + 16*2
	p := uint16(target.Buf[off]) | uint16(target.Buf[off+1])<<8
	r5 := (p >> 11) & 0x1F
	g6 := (p >> 5) & 0x3F
	if g6 == 0 || r5 != 0 {
		t.Fatalf("expected near card at center, got r=%d g=%d", r5, g6)
	}
}
