package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FrameUniforms is the per-frame block shared by every invocation: camera
// matrices with their inverses plus the frame identifier.
type FrameUniforms struct {
	Model               mgl32.Mat4
	View                mgl32.Mat4
	ViewInverse         mgl32.Mat4
	Projection          mgl32.Mat4
	ProjectionInverse   mgl32.Mat4
	ModelViewProjection mgl32.Mat4

	// Frame packs width, height and the monotonically increasing counter.
	Frame [3]uint32
}

func (u *FrameUniforms) Width() uint32  { return u.Frame[0] }
func (u *FrameUniforms) Height() uint32 { return u.Frame[1] }
func (u *FrameUniforms) Counter() uint32 {
	return u.Frame[2]
}

// PrimaryRay unprojects a normalized device coordinate through the inverse
// projection and view into a world-space ray.
func (u *FrameUniforms) PrimaryRay(ndc mgl32.Vec2, tMin, tMax float32) Ray {
	origin := u.ViewInverse.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	target := u.ProjectionInverse.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	dir := u.ViewInverse.Mul4x1(target.Vec3().Normalize().Vec4(0)).Vec3().Normalize()
	return Ray{Origin: origin, Dir: dir, TMin: tMin, TMax: tMax}
}
