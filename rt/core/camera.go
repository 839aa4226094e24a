package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a look-at camera with orbit, dolly and pan manipulation.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	VFov  float32 // vertical field of view, degrees
	ZNear float32
	ZFar  float32
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 1, 4},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		VFov:     35,
		ZNear:    0.1,
		ZFar:     1000,
	}
}

func (c *Camera) LookAt(eye, target mgl32.Vec3) {
	c.Position = eye
	c.Target = target
}

// Orbit rotates the eye around the target. dx spins about the up axis, dy
// tilts toward the poles, clamped short of straight up or down.
func (c *Camera) Orbit(dx, dy float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	yaw := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	pitch := float32(math.Asin(float64(offset.Y() / radius)))
	yaw += dx
	pitch += dy
	const limit = float32(math.Pi/2 - 0.01)
	if pitch > limit {
		pitch = limit
	}
	if pitch < -limit {
		pitch = -limit
	}
	cosPitch := float32(math.Cos(float64(pitch)))
	c.Position = c.Target.Add(mgl32.Vec3{
		radius * cosPitch * float32(math.Sin(float64(yaw))),
		radius * float32(math.Sin(float64(pitch))),
		radius * cosPitch * float32(math.Cos(float64(yaw))),
	})
}

// Dolly scales the eye-target distance, so repeated steps approach but never
// cross the target.
func (c *Camera) Dolly(amount float32) {
	offset := c.Position.Sub(c.Target)
	c.Position = c.Target.Add(offset.Mul(float32(math.Exp(float64(-amount)))))
}

// Pan translates eye and target together in the view plane.
func (c *Camera) Pan(dx, dy float32) {
	view := c.Target.Sub(c.Position).Normalize()
	right := view.Cross(c.Up).Normalize()
	up := right.Cross(view)
	shift := right.Mul(dx).Add(up.Mul(dy))
	c.Position = c.Position.Add(shift)
	c.Target = c.Target.Add(shift)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.VFov), aspect, c.ZNear, c.ZFar)
}

// Uniforms assembles the per-frame block for an output size and frame
// counter.
func (c *Camera) Uniforms(width, height, frame uint32) FrameUniforms {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(float32(width) / float32(height))
	return FrameUniforms{
		Model:               mgl32.Ident4(),
		View:                view,
		ViewInverse:         view.Inv(),
		Projection:          proj,
		ProjectionInverse:   proj.Inv(),
		ModelViewProjection: proj.Mul4(view),
		Frame:               [3]uint32{width, height, frame},
	}
}
