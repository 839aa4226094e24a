package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Sky shades rays that leave the scene: a vertical gradient with a hard sun
// disk when enabled, black otherwise.
type Sky struct {
	Enabled bool
}

// sunCosThreshold is the disk edge; directions with a larger dot against
// sunDir read the sun directly.
const sunCosThreshold = 0.99

var (
	skyHorizon = mgl32.Vec3{1, 1, 1}
	skyZenith  = mgl32.Vec3{0.5, 0.7, 1.0}
	sunDir     = mgl32.Vec3{-0.5, 0.8, 0.2}.Normalize()
	sunColor   = mgl32.Vec3{12, 11, 9}
)

func (s Sky) Radiance(dir mgl32.Vec3) mgl32.Vec3 {
	if !s.Enabled {
		return mgl32.Vec3{}
	}
	t := 0.5 * (dir.Y() + 1)
	c := skyHorizon.Mul(1 - t).Add(skyZenith.Mul(t))
	if dir.Dot(sunDir) > sunCosThreshold {
		c = sunColor
	}
	return c
}
