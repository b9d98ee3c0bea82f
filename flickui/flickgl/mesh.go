package flickgl

// Prebuilt meshes for the panels. Faces wind counter-clockwise seen from
// outside, which is the orientation the rasterizer keeps.

// CubeFaceOrder documents the face order used by CubeMesh:
// +X, -X, +Y, -Y, +Z, -Z.
const CubeFaceOrder = "+x -x +y -y +z -z"

// CubeMesh builds an axis-aligned cube with half-extent size and one vertex
// color per face.
func CubeMesh(size Scalar, faces [6]Color) Mesh {
	s := size
	var m Mesh
	m.Vertices = make([]Vertex, 0, 24)
	m.Indices = make([]uint16, 0, 36)

	appendFace(&m, faces[0], V3(1, 0, 0),
		V3(s, -s, s), V3(s, -s, -s), V3(s, s, -s), V3(s, s, s))
	appendFace(&m, faces[1], V3(-1, 0, 0),
		V3(-s, -s, -s), V3(-s, -s, s), V3(-s, s, s), V3(-s, s, -s))
	appendFace(&m, faces[2], V3(0, 1, 0),
		V3(-s, s, s), V3(s, s, s), V3(s, s, -s), V3(-s, s, -s))
	appendFace(&m, faces[3], V3(0, -1, 0),
		V3(-s, -s, -s), V3(s, -s, -s), V3(s, -s, s), V3(-s, -s, s))
	appendFace(&m, faces[4], V3(0, 0, 1),
		V3(-s, -s, s), V3(s, -s, s), V3(s, s, s), V3(-s, s, s))
	appendFace(&m, faces[5], V3(0, 0, -1),
		V3(s, -s, -s), V3(-s, -s, -s), V3(-s, s, -s), V3(s, s, -s))

	return m
}

// CardMesh builds a front-facing quad of the given width and height at z=0.
func CardMesh(w, h Scalar, c Color) Mesh {
	hw := w / 2
	hh := h / 2
	var m Mesh
	m.Vertices = make([]Vertex, 0, 4)
	m.Indices = make([]uint16, 0, 6)
	appendFace(&m, c, V3(0, 0, 1),
		V3(-hw, -hh, 0), V3(hw, -hh, 0), V3(hw, hh, 0), V3(-hw, hh, 0))
	m.Material.BaseColor = c
	return m
}

func appendFace(m *Mesh, c Color, n Vec3, a, b, cc, d Vec3) {
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: a, Normal: n, Color: c},
		Vertex{Pos: b, Normal: n, Color: c},
		Vertex{Pos: cc, Normal: n, Color: c},
		Vertex{Pos: d, Normal: n, Color: c},
	)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
