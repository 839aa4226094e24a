package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
)

// quadWorld is a unit quad in the XY plane facing +Z with white vertex
// colors.
func quadWorld(mat core.MaterialInfo, transform mgl32.Mat4) *core.World {
	w := &core.World{
		Arena: core.GeometryArena{
			Vertices: []core.MeshVertex{
				{Position: mgl32.Vec4{-1, -1, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}},
				{Position: mgl32.Vec4{1, -1, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}},
				{Position: mgl32.Vec4{1, 1, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}},
				{Position: mgl32.Vec4{-1, 1, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}},
			},
			Indices: []uint64{0, 1, 2, 0, 2, 3},
		},
		Materials: []core.MaterialInfo{mat},
	}
	inst := core.SceneInstance{Id: 0, MaterialIdx: 0, FirstIndex: 0, IndexCount: 6, BaseVertex: 0}
	inst.SetTransform(transform)
	w.Instances = []core.SceneInstance{inst}
	return w
}

// coloredQuadWorld assigns distinct vertex colors for interpolation checks.
func coloredQuadWorld() *core.World {
	w := quadWorld(core.MaterialInfo{BaseColor: mgl32.Vec4{1, 1, 1, 1}}, mgl32.Ident4())
	w.Arena.Vertices[0].Color = mgl32.Vec4{1, 0, 0, 1}
	w.Arena.Vertices[1].Color = mgl32.Vec4{0, 1, 0, 1}
	w.Arena.Vertices[2].Color = mgl32.Vec4{0, 0, 1, 1}
	return w
}

func TestResolveSurfaceInterpolation(t *testing.T) {
	w := coloredQuadWorld()
	hit := accel.Hit{InstanceIndex: 0, Triangle: 0, U: 1.0 / 3.0, V: 1.0 / 3.0}
	s := ResolveSurface(w, hit)

	assert.InDelta(t, 1.0/3.0, float64(s.Position.X()), 1e-5)
	assert.InDelta(t, -1.0/3.0, float64(s.Position.Y()), 1e-5)
	assert.InDelta(t, 0, float64(s.Position.Z()), 1e-5)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/3.0, float64(s.Color[i]), 1e-5, "color channel %d", i)
	}
	assert.InDelta(t, 1, float64(s.Color.W()), 1e-5)

	assert.InDelta(t, 1, float64(s.Normal.Z()), 1e-5)
	assert.InDelta(t, 2.0/3.0, float64(s.UV.X()), 1e-5)
	assert.InDelta(t, 1.0/3.0, float64(s.UV.Y()), 1e-5)
	assert.Same(t, &w.Instances[0], s.Instance)
}

func TestResolveSurfaceTransformed(t *testing.T) {
	transform := mgl32.Translate3D(0, 0, -5).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90)))
	w := quadWorld(core.MaterialInfo{}, transform)
	hit := accel.Hit{InstanceIndex: 0, Triangle: 0, U: 0, V: 0}
	s := ResolveSurface(w, hit)

	// Vertex a rotates from (-1,-1,0) to (-1,0,-1), then translates.
	assert.InDelta(t, -1, float64(s.Position.X()), 1e-5)
	assert.InDelta(t, 0, float64(s.Position.Y()), 1e-5)
	assert.InDelta(t, -6, float64(s.Position.Z()), 1e-5)

	// The +Z normal rotates onto -Y; translation must not leak in.
	assert.InDelta(t, 0, float64(s.Normal.X()), 1e-5)
	assert.InDelta(t, -1, float64(s.Normal.Y()), 1e-5)
	assert.InDelta(t, 0, float64(s.Normal.Z()), 1e-5)
	assert.InDelta(t, 1, float64(s.Normal.Len()), 1e-5)
}

func TestHadamard(t *testing.T) {
	got := hadamard(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{0.5, 0, -1})
	assert.Equal(t, mgl32.Vec3{1, 0, -4}, got)
}
