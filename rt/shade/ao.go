package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
	"github.com/heliosrt/helios/rt/sampling"
)

// AmbientOcclusion estimates openness. Each bounce past the first adds a
// unit penalty to radiance; the driver inverts the folded value, so pixels
// whose rays escape quickly read bright.
type AmbientOcclusion struct {
	Noise *sampling.BlueNoise
}

// NewAmbientOcclusion wires the policy to a noise table, generating a
// fallback table when none is supplied.
func NewAmbientOcclusion(noise *sampling.BlueNoise) *AmbientOcclusion {
	if noise == nil {
		noise = sampling.GenerateNoise(64, 0)
	}
	return &AmbientOcclusion{Noise: noise}
}

func (*AmbientOcclusion) Name() string { return "ao" }

func (ao *AmbientOcclusion) ClosestHit(p core.RayPayload, ctx Context, hit accel.Hit) core.RayPayload {
	s := ResolveSurface(ctx.World, hit)
	n := s.Normal
	if n.Dot(ctx.Ray.Dir) > 0 {
		n = n.Mul(-1)
	}

	// Noise lookup: pixel plus an RNG texel jitter, decorrelated across
	// bounce depth and sample index.
	var jitter mgl32.Vec2
	jitter, p.Rng = sampling.Next2(p.Rng)
	size := float32(ao.Noise.Size())
	shift := int(p.Depth)*17 + int(p.SampleIndex)*31
	xi := ao.Noise.Sample(
		ctx.Px+int(jitter.X()*size)+shift,
		ctx.Py+int(jitter.Y()*size)+shift,
	)

	p.NextOrigin = s.Position.Add(n.Mul(originEpsilon))
	p.NextDir = sampling.CosineHemisphere(n, xi)
	p.TMin, p.TMax = nextTMin, nextTMax
	if p.Depth > 0 {
		p.Radiance = p.Radiance.Add(mgl32.Vec3{1, 1, 1})
	}
	p.Depth++
	return p
}

// Miss ends the ray and leaves the penalty count where it is. Termination
// never comes from ClosestHit, only from here or the driver's depth cap.
func (*AmbientOcclusion) Miss(p core.RayPayload, _ Context) core.RayPayload {
	p.Terminated = true
	return p
}

func (*AmbientOcclusion) Fold(radiance mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}.Sub(radiance)
}
