package flickgl

// Material is the per-mesh surface description. Panels mostly rely on
// per-vertex colors; BaseColor is what flat shading multiplies the light
// into.
type Material struct {
	BaseColor Color
}

// LightMode selects how flat shading is lit.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is one ambient plus one directional contribution.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective viewing transform. The panels always look at a
// single object near the origin, so there is no orthographic path.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the perspective projection for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex. Normal is the authored face normal; the renderer
// falls back to the triangle's geometric normal when it is zero.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is a triangle list with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16

	Transform Mat4
	Material  Material
}

type meshSlot struct {
	used bool
	mesh Mesh
}

// Scene holds the camera, the light and a fixed number of mesh slots. Each
// panel owns one scene with a one- or two-slot budget, so slots are a plain
// array scan rather than a free list.
type Scene struct {
	Camera Camera
	Light  Light

	slots []meshSlot
}

// NewScene allocates a scene with a fixed mesh capacity and the default
// camera and light the panels start from.
func NewScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: Scalar(0.75),
		},
		slots: make([]meshSlot, maxMeshes),
	}
}

// AddMesh places a mesh in the first free slot and returns its id, or -1
// when every slot is taken.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.slots {
		if s.slots[i].used {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.slots[i] = meshSlot{used: true, mesh: m}
		return i
	}
	return -1
}

// SetMeshEnabled shows or hides a mesh without giving up its slot.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.slots) || !s.slots[id].used {
		return
	}
	s.slots[id].mesh.Enabled = enabled
}

// UpdateMeshTransform replaces the object transform of a mesh. This is the
// per-frame call the panels drive their rotation through.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.slots) || !s.slots[id].used {
		return
	}
	s.slots[id].mesh.Transform = m
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.slots {
		if !s.slots[i].used {
			continue
		}
		fn(&s.slots[i].mesh)
	}
}
