package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RayPayload is the per-ray record threaded through one sample's bounce
// sequence. It moves by value: each shading routine receives a copy, mutates
// it and hands it back, so no two stages ever alias the same state.
type RayPayload struct {
	Radiance    mgl32.Vec3
	Depth       uint32
	SampleIndex uint32
	Terminated  bool

	NextOrigin mgl32.Vec3
	NextDir    mgl32.Vec3
	TMin       float32
	TMax       float32

	// Roughness carries the squared-alpha between geometry resolve and lobe
	// sampling within one hit.
	Roughness float32

	// Rng persists across the samples of a pixel and is reseeded once per
	// pixel per frame by the driver.
	Rng uint32
}

// NextRay builds the follow-up ray a shading routine requested.
func (p *RayPayload) NextRay() Ray {
	return Ray{Origin: p.NextOrigin, Dir: p.NextDir, TMin: p.TMin, TMax: p.TMax}
}
