package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleNormal(m Mesh, tri int) (mgl32.Vec3, bool) {
	a := m.Vertices[m.Indices[tri*3+0]].Position.Vec3()
	b := m.Vertices[m.Indices[tri*3+1]].Position.Vec3()
	c := m.Vertices[m.Indices[tri*3+2]].Position.Vec3()
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-7 {
		return mgl32.Vec3{}, false
	}
	return n.Normalize(), true
}

func triangleCentroid(m Mesh, tri int) mgl32.Vec3 {
	a := m.Vertices[m.Indices[tri*3+0]].Position.Vec3()
	b := m.Vertices[m.Indices[tri*3+1]].Position.Vec3()
	c := m.Vertices[m.Indices[tri*3+2]].Position.Vec3()
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

func TestPlaneGeometry(t *testing.T) {
	m := NewPlane(4)

	require.Len(t, m.Vertices, 4)
	require.Len(t, m.Indices, 6)

	up := mgl32.Vec3{0, 1, 0}
	for _, v := range m.Vertices {
		assert.Equal(t, up, v.Normal)
		assert.Equal(t, float32(0), v.Position.Y())
		assert.Equal(t, float32(2), max32(abs32(v.Position.X()), abs32(v.Position.Z())))
	}
	for tri := 0; tri < 2; tri++ {
		n, ok := triangleNormal(m, tri)
		require.True(t, ok)
		assert.InDelta(t, 1.0, n.Dot(up), 1e-6, "triangle %d winds against +Y", tri)
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	m := NewCube(2)

	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)

	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-6)
	}
	for tri := 0; tri < len(m.Indices)/3; tri++ {
		n, ok := triangleNormal(m, tri)
		require.True(t, ok, "degenerate cube triangle %d", tri)

		shading := m.Vertices[m.Indices[tri*3]].Normal
		assert.InDelta(t, 1.0, n.Dot(shading), 1e-6, "triangle %d disagrees with its face normal", tri)
		assert.Positive(t, n.Dot(triangleCentroid(m, tri)), "triangle %d winds inward", tri)
	}
}

func TestUVSphereLiesOnRadius(t *testing.T) {
	const radius = 2.5
	m := NewUVSphere(radius, 8, 16)

	require.Len(t, m.Vertices, 9*17)
	require.Len(t, m.Indices, 8*16*6)

	for i, v := range m.Vertices {
		assert.InDelta(t, radius, v.Position.Vec3().Len(), 1e-4, "vertex %d off the sphere", i)
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-5)
		assert.InDelta(t, 1.0, v.Normal.Dot(v.Position.Vec3().Normalize()), 1e-5,
			"vertex %d normal is not radial", i)
	}
}

func TestUVSphereWindsOutward(t *testing.T) {
	m := NewUVSphere(1, 8, 16)

	degenerate := 0
	for tri := 0; tri < len(m.Indices)/3; tri++ {
		n, ok := triangleNormal(m, tri)
		if !ok {
			degenerate++
			continue
		}
		assert.Positive(t, n.Dot(triangleCentroid(m, tri)), "triangle %d winds inward", tri)
	}
	t.Logf("degenerate pole triangles: %d", degenerate)
	assert.LessOrEqual(t, degenerate, 2*16)
}

func TestPrimitiveArgumentFloors(t *testing.T) {
	m := NewUVSphere(1, 0, 1)
	assert.Len(t, m.Vertices, 3*4)
	assert.Len(t, m.Indices, 2*3*6)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
