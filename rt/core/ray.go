package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a world-space ray restricted to the [TMin,TMax] segment.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
	TMin   float32
	TMax   float32
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
