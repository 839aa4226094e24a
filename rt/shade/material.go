package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
	"github.com/heliosrt/helios/rt/sampling"
)

// dielectricEta is the relative refraction index the specular lobe sees.
const dielectricEta = 1.0 / 1.5

// Material is the full path-tracing policy. Each hit draws one of three
// lobes: metallic reflection, specular dielectric reflection or a diffuse
// bounce. Radiance is replaced by the sampled lobe's color at every bounce
// rather than attenuated through a throughput chain; the miss shader then
// modulates that last color with the sky.
type Material struct {
	Sky Sky
}

func NewMaterial(sky Sky) *Material {
	return &Material{Sky: sky}
}

func (*Material) Name() string { return "material" }

func (m *Material) ClosestHit(p core.RayPayload, ctx Context, hit accel.Hit) core.RayPayload {
	s := ResolveSurface(ctx.World, hit)
	mat := ctx.World.Material(s.Instance)

	// A sufficiently emissive surface is a light source and ends the path.
	if mat.Emits() {
		p.Radiance = mat.Emissive
		p.Terminated = true
		p.Depth++
		return p
	}

	n := s.Normal
	if n.Dot(ctx.Ray.Dir) > 0 {
		n = n.Mul(-1)
	}
	alpha := mat.Roughness * mat.Roughness
	p.Roughness = alpha * alpha
	tint := hadamard(mat.BaseColor.Vec3(), s.Color.Vec3())

	var lobe float32
	lobe, p.Rng = sampling.Next(p.Rng)

	var dir mgl32.Vec3
	if lobe < mat.Metallic {
		var xi mgl32.Vec2
		xi, p.Rng = sampling.Next2(p.Rng)
		micro := sampling.GGXMicrofacet(n, xi, p.Roughness)
		dir = sampling.Reflect(ctx.Ray.Dir, micro)
		p.Radiance = tint
	} else {
		var xi mgl32.Vec2
		xi, p.Rng = sampling.Next2(p.Rng)
		micro := sampling.GGXMicrofacet(n, xi, p.Roughness)
		fresnel := sampling.FresnelDielectric(ctx.Ray.Dir, micro, dielectricEta)

		var draw float32
		draw, p.Rng = sampling.Next(p.Rng)
		if draw < fresnel {
			dir = sampling.Reflect(ctx.Ray.Dir, micro)
			p.Radiance = mgl32.Vec3{1, 1, 1}
		} else {
			xi, p.Rng = sampling.Next2(p.Rng)
			dir = sampling.CosineHemisphere(n, xi)
			p.Radiance = tint
		}
	}

	p.NextOrigin = s.Position.Add(n.Mul(originEpsilon))
	p.NextDir = dir
	p.TMin, p.TMax = nextTMin, nextTMax
	p.Depth++
	return p
}

// Miss folds the sky into the path. The primary ray sees the sky directly;
// deeper rays modulate the lobe color the last hit left in the payload.
func (m *Material) Miss(p core.RayPayload, ctx Context) core.RayPayload {
	sky := m.Sky.Radiance(ctx.Ray.Dir)
	if p.Depth == 0 {
		p.Radiance = sky
	} else {
		p.Radiance = hadamard(p.Radiance, sky)
	}
	p.Terminated = true
	return p
}

func (*Material) Fold(radiance mgl32.Vec3) mgl32.Vec3 {
	return radiance
}
