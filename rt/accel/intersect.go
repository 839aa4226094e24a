package accel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/core"
)

const triEpsilon = 1e-8

// Intersect returns the closest hit along the ray, or false on a miss.
// Rays are transformed into each instance's object space; the distance
// parameter stays in world units because direction length is preserved.
func (a *Accel) Intersect(r core.Ray) (Hit, bool) {
	best := Hit{InstanceIndex: -1, T: r.TMax}
	worldInv := invDir(r.Dir)
	for i := range a.meshes {
		m := &a.meshes[i]
		if len(m.nodes) == 0 {
			continue
		}
		if !slab(r.Origin, worldInv, r.TMin, best.T, m.worldMin, m.worldMax) {
			continue
		}
		o := m.inverse.Mul4x1(r.Origin.Vec4(1)).Vec3()
		d := m.inverse.Mul4x1(r.Dir.Vec4(0)).Vec3()
		a.intersectMesh(int32(i), m, o, d, r.TMin, &best)
	}
	if best.InstanceIndex < 0 {
		return Hit{}, false
	}
	return best, true
}

func (a *Accel) intersectMesh(meshIdx int32, m *meshAccel, o, d mgl32.Vec3, tMin float32, best *Hit) {
	inst := &a.world.Instances[meshIdx]
	inv := invDir(d)

	var stack [64]int32
	stack[0] = 0
	top := 1
	for top > 0 {
		top--
		n := &m.nodes[stack[top]]
		if !slab(o, inv, tMin, best.T, n.Min, n.Max) {
			continue
		}
		if n.LeafCount > 0 {
			for k := int32(0); k < n.LeafCount; k++ {
				tri := m.order[n.LeafFirst+k]
				va, vb, vc := a.world.Triangle(inst, uint64(tri))
				t, u, v, front, ok := intersectTriangle(o, d,
					va.Position.Vec3(), vb.Position.Vec3(), vc.Position.Vec3(), tMin, best.T)
				if ok {
					*best = Hit{
						InstanceIndex: meshIdx,
						Triangle:      uint64(tri),
						T:             t,
						U:             u,
						V:             v,
						FrontFace:     front,
					}
				}
			}
			continue
		}
		if n.Left >= 0 {
			stack[top] = n.Left
			top++
		}
		if n.Right >= 0 {
			stack[top] = n.Right
			top++
		}
	}
}

func invDir(d mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{1 / d.X(), 1 / d.Y(), 1 / d.Z()}
}

func slab(o, inv mgl32.Vec3, tMin, tMax float32, bmin, bmax mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		t0 := (bmin[axis] - o[axis]) * inv[axis]
		t1 := (bmax[axis] - o[axis]) * inv[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// intersectTriangle is the Moller-Trumbore test against one triangle.
func intersectTriangle(o, d, va, vb, vc mgl32.Vec3, tMin, tMax float32) (t, u, v float32, front, ok bool) {
	e1 := vb.Sub(va)
	e2 := vc.Sub(va)
	p := d.Cross(e2)
	det := e1.Dot(p)
	if det > -triEpsilon && det < triEpsilon {
		return
	}
	invDet := 1 / det
	s := o.Sub(va)
	u = s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return
	}
	q := s.Cross(e1)
	v = d.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return
	}
	t = e2.Dot(q) * invDet
	if t < tMin || t > tMax {
		return
	}
	front = det > 0
	ok = true
	return
}
