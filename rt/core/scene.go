package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshVertex matches the baked vertex arena layout.
type MeshVertex struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// MaterialInfo is one object-uniform material record per instance.
type MaterialInfo struct {
	BaseColor mgl32.Vec4
	Emissive  mgl32.Vec3
	Metallic  float32
	Roughness float32
}

// Emits reports whether any emissive channel reaches the light-source
// threshold.
func (m *MaterialInfo) Emits() bool {
	return m.Emissive.X() >= 1 || m.Emissive.Y() >= 1 || m.Emissive.Z() >= 1
}

// SceneInstance places one arena geometry range in the world. Instances are
// immutable while a frame renders.
type SceneInstance struct {
	Id          uint32
	MaterialIdx uint32
	Tag         string

	Transform   mgl32.Mat4
	TransformIT mgl32.Mat4

	FirstIndex uint64
	IndexCount uint64
	BaseVertex uint64
}

// SetTransform stores the world transform together with its
// inverse-transpose, which maps normals to world space.
func (inst *SceneInstance) SetTransform(m mgl32.Mat4) {
	inst.Transform = m
	inst.TransformIT = m.Inv().Transpose()
}

func (inst *SceneInstance) TriangleCount() uint64 {
	return inst.IndexCount / 3
}

// GeometryArena holds every mesh's vertices and indices back to back.
// Instances address it through ranges, never through pointers.
type GeometryArena struct {
	Vertices []MeshVertex
	Indices  []uint64
}

// World is the immutable scene snapshot consumed while rendering.
type World struct {
	Arena     GeometryArena
	Instances []SceneInstance
	Materials []MaterialInfo
}

// Triangle resolves the three vertices of an instance's triangle tri.
// Out-of-range references are the host's fault; nothing re-validates here.
func (w *World) Triangle(inst *SceneInstance, tri uint64) (a, b, c MeshVertex) {
	base := inst.FirstIndex + tri*3
	idx := w.Arena.Indices
	a = w.Arena.Vertices[inst.BaseVertex+idx[base]]
	b = w.Arena.Vertices[inst.BaseVertex+idx[base+1]]
	c = w.Arena.Vertices[inst.BaseVertex+idx[base+2]]
	return
}

// Material returns the record backing an instance.
func (w *World) Material(inst *SceneInstance) *MaterialInfo {
	return &w.Materials[inst.MaterialIdx]
}

// TriangleTotal counts the triangles of all instances.
func (w *World) TriangleTotal() uint64 {
	var n uint64
	for i := range w.Instances {
		n += w.Instances[i].TriangleCount()
	}
	return n
}
