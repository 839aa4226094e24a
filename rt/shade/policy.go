package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
)

// originEpsilon is how far the next ray origin is pushed along the surface
// normal to dodge self-intersection. Follow-up rays reuse the primary range.
const (
	originEpsilon = 1e-3
	nextTMin      = 1e-3
	nextTMax      = 1e4
)

// Context carries the per-dispatch inputs a shading routine needs besides
// the payload: the scene snapshot, the ray that produced the outcome and the
// pixel owning the invocation.
type Context struct {
	World *core.World
	Ray   core.Ray
	Px    int
	Py    int
}

// Policy is one member of the closed dispatch set. The driver routes every
// intersection outcome to exactly one of ClosestHit or Miss; both take the
// payload by value and return the mutated copy.
type Policy interface {
	Name() string
	ClosestHit(p core.RayPayload, ctx Context, hit accel.Hit) core.RayPayload
	Miss(p core.RayPayload, ctx Context) core.RayPayload

	// Fold maps one finished sample's radiance to its estimate.
	Fold(radiance mgl32.Vec3) mgl32.Vec3
}

// Surface is hit geometry resolved into world space.
type Surface struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
	UV       mgl32.Vec2
	Instance *core.SceneInstance
}

// ResolveSurface interpolates the struck triangle at the hit's barycentric
// coordinates and lifts position and normal into world space through the
// instance transform and its inverse-transpose.
func ResolveSurface(w *core.World, hit accel.Hit) Surface {
	inst := &w.Instances[hit.InstanceIndex]
	va, vb, vc := w.Triangle(inst, hit.Triangle)
	wa := 1 - hit.U - hit.V

	pos := va.Position.Vec3().Mul(wa).
		Add(vb.Position.Vec3().Mul(hit.U)).
		Add(vc.Position.Vec3().Mul(hit.V))
	nrm := va.Normal.Mul(wa).
		Add(vb.Normal.Mul(hit.U)).
		Add(vc.Normal.Mul(hit.V))
	col := va.Color.Mul(wa).
		Add(vb.Color.Mul(hit.U)).
		Add(vc.Color.Mul(hit.V))
	uv := va.UV.Mul(wa).
		Add(vb.UV.Mul(hit.U)).
		Add(vc.UV.Mul(hit.V))

	return Surface{
		Position: inst.Transform.Mul4x1(pos.Vec4(1)).Vec3(),
		Normal:   inst.TransformIT.Mul4x1(nrm.Vec4(0)).Vec3().Normalize(),
		Color:    col,
		UV:       uv,
		Instance: inst,
	}
}

func hadamard(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
