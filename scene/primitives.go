package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/core"
)

// Mesh is host-side geometry before it is baked into the arena.
type Mesh struct {
	Vertices []core.MeshVertex
	Indices  []uint64
}

var white = mgl32.Vec4{1, 1, 1, 1}

// NewPlane builds a size by size quad in the XZ plane facing +Y, centered
// at the origin.
func NewPlane(size float32) Mesh {
	h := size / 2
	up := mgl32.Vec3{0, 1, 0}
	return Mesh{
		Vertices: []core.MeshVertex{
			{Position: mgl32.Vec4{-h, 0, -h, 1}, Color: white, Normal: up, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec4{-h, 0, h, 1}, Color: white, Normal: up, UV: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec4{h, 0, h, 1}, Color: white, Normal: up, UV: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec4{h, 0, -h, 1}, Color: white, Normal: up, UV: mgl32.Vec2{1, 0}},
		},
		Indices: []uint64{0, 1, 2, 0, 2, 3},
	}
}

// NewCube builds an axis-aligned cube with per-face normals, centered at
// the origin.
func NewCube(size float32) Mesh {
	h := size / 2
	var m Mesh
	addFace := func(n mgl32.Vec3, corners [4]mgl32.Vec3) {
		base := uint64(len(m.Vertices))
		uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for i, c := range corners {
			m.Vertices = append(m.Vertices, core.MeshVertex{
				Position: c.Vec4(1), Color: white, Normal: n, UV: uvs[i],
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	addFace(mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}})
	addFace(mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}})
	addFace(mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}})
	addFace(mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}})
	addFace(mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}})
	addFace(mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}})
	return m
}

// NewUVSphere builds a latitude-longitude sphere. Poles carry duplicated
// vertices, so a few triangles there are degenerate and never hit.
func NewUVSphere(radius float32, rings, segments int) Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	var m Mesh
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		sinT, cosT := math.Sincos(theta)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			sinP, cosP := math.Sincos(phi)
			n := mgl32.Vec3{
				float32(sinT * cosP),
				float32(cosT),
				float32(sinT * sinP),
			}
			m.Vertices = append(m.Vertices, core.MeshVertex{
				Position: n.Mul(radius).Vec4(1),
				Color:    white,
				Normal:   n,
				UV: mgl32.Vec2{
					float32(s) / float32(segments),
					float32(r) / float32(rings),
				},
			})
		}
	}
	stride := uint64(segments + 1)
	for r := uint64(0); r < uint64(rings); r++ {
		for s := uint64(0); s < uint64(segments); s++ {
			i0 := r*stride + s
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			m.Indices = append(m.Indices, i0, i1, i2, i1, i3, i2)
		}
	}
	return m
}
