package accel

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/core"
)

// Hit identifies the closest intersection produced by a scene query.
type Hit struct {
	InstanceIndex int32
	Triangle      uint64
	T             float32
	U, V          float32 // barycentric weights of the triangle's b and c vertices
	FrontFace     bool
}

type node struct {
	Min       mgl32.Vec3
	Max       mgl32.Vec3
	Left      int32
	Right     int32
	LeafFirst int32
	LeafCount int32
}

type triRef struct {
	min, max mgl32.Vec3
	centroid mgl32.Vec3
	id       int32
}

// meshAccel indexes one instance's triangles in object space.
type meshAccel struct {
	nodes    []node
	order    []int32 // leaf ranges point into this triangle ordering
	inverse  mgl32.Mat4
	worldMin mgl32.Vec3
	worldMax mgl32.Vec3
}

// Accel is the opaque intersection structure the driver queries. It is built
// once per scene and read-only while rendering.
type Accel struct {
	world  *core.World
	meshes []meshAccel
}

const leafSize = 4

// Build indexes every instance of the world.
func Build(w *core.World) *Accel {
	a := &Accel{world: w, meshes: make([]meshAccel, len(w.Instances))}
	for i := range w.Instances {
		a.meshes[i] = buildMesh(w, &w.Instances[i])
	}
	return a
}

func buildMesh(w *core.World, inst *core.SceneInstance) meshAccel {
	count := inst.TriangleCount()
	refs := make([]triRef, 0, count)
	for tri := uint64(0); tri < count; tri++ {
		va, vb, vc := w.Triangle(inst, tri)
		pa, pb, pc := va.Position.Vec3(), vb.Position.Vec3(), vc.Position.Vec3()
		refs = append(refs, triRef{
			min:      vecMin(pa, vecMin(pb, pc)),
			max:      vecMax(pa, vecMax(pb, pc)),
			centroid: pa.Add(pb).Add(pc).Mul(1.0 / 3.0),
			id:       int32(tri),
		})
	}

	m := meshAccel{inverse: inst.Transform.Inv()}
	if len(refs) == 0 {
		return m
	}
	m.order = make([]int32, 0, len(refs))
	buildNodes(refs, &m.nodes, &m.order)
	m.worldMin, m.worldMax = transformAABB(inst.Transform, m.nodes[0].Min, m.nodes[0].Max)
	return m
}

func buildNodes(refs []triRef, nodes *[]node, order *[]int32) int32 {
	idx := int32(len(*nodes))
	*nodes = append(*nodes, node{Left: -1, Right: -1, LeafFirst: -1})

	inf := float32(math.Inf(1))
	bmin := mgl32.Vec3{inf, inf, inf}
	bmax := mgl32.Vec3{-inf, -inf, -inf}
	for _, r := range refs {
		bmin = vecMin(bmin, r.min)
		bmax = vecMax(bmax, r.max)
	}
	(*nodes)[idx].Min = bmin
	(*nodes)[idx].Max = bmax

	if len(refs) <= leafSize {
		(*nodes)[idx].LeafFirst = int32(len(*order))
		(*nodes)[idx].LeafCount = int32(len(refs))
		for _, r := range refs {
			*order = append(*order, r.id)
		}
		return idx
	}

	// Median split on the largest extent axis.
	extent := bmax.Sub(bmin)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].centroid[axis] < refs[j].centroid[axis]
	})
	mid := len(refs) / 2
	(*nodes)[idx].Left = buildNodes(refs[:mid], nodes, order)
	(*nodes)[idx].Right = buildNodes(refs[mid:], nodes, order)
	return idx
}

// NodeTotal counts BVH nodes across all instances.
func (a *Accel) NodeTotal() int {
	n := 0
	for i := range a.meshes {
		n += len(a.meshes[i].nodes)
	}
	return n
}

func vecMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func vecMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

func transformAABB(m mgl32.Mat4, bmin, bmax mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	inf := float32(math.Inf(1))
	outMin := mgl32.Vec3{inf, inf, inf}
	outMax := mgl32.Vec3{-inf, -inf, -inf}
	for i := 0; i < 8; i++ {
		corner := bmin
		if i&1 != 0 {
			corner[0] = bmax[0]
		}
		if i&2 != 0 {
			corner[1] = bmax[1]
		}
		if i&4 != 0 {
			corner[2] = bmax[2]
		}
		p := m.Mul4x1(corner.Vec4(1)).Vec3()
		outMin = vecMin(outMin, p)
		outMax = vecMax(outMax, p)
	}
	return outMin, outMax
}
