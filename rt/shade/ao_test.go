package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
	"github.com/heliosrt/helios/rt/sampling"
)

func TestPenaltyPerBounceBeyondFirst(t *testing.T) {
	w := quadWorld(core.MaterialInfo{}, mgl32.Ident4())
	ao := NewAmbientOcclusion(nil)
	ctx := Context{World: w, Ray: core.Ray{Origin: mgl32.Vec3{0, 0, 3}, Dir: mgl32.Vec3{0, 0, -1}}, Px: 3, Py: 5}
	hit := accel.Hit{InstanceIndex: 0, Triangle: 0, U: 0.25, V: 0.25}

	p := ao.ClosestHit(core.RayPayload{Rng: sampling.Seed(0, 0)}, ctx, hit)
	assert.Equal(t, mgl32.Vec3{}, p.Radiance, "first bounce carries no penalty")
	assert.Equal(t, uint32(1), p.Depth)
	assert.False(t, p.Terminated)

	p = ao.ClosestHit(p, ctx, hit)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.Radiance)
	assert.Equal(t, uint32(2), p.Depth)
	assert.False(t, p.Terminated)

	p = ao.ClosestHit(p, ctx, hit)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, p.Radiance)
	assert.Equal(t, uint32(3), p.Depth)
	assert.False(t, p.Terminated, "termination only comes from the depth cap or a miss")
}

func TestAONextBounceAboveSurface(t *testing.T) {
	w := quadWorld(core.MaterialInfo{}, mgl32.Ident4())
	ao := NewAmbientOcclusion(nil)
	hit := accel.Hit{InstanceIndex: 0, Triangle: 0, U: 0.25, V: 0.25}

	front := Context{World: w, Ray: core.Ray{Origin: mgl32.Vec3{0, 0, 3}, Dir: mgl32.Vec3{0, 0, -1}}}
	for i := 0; i < 200; i++ {
		p := ao.ClosestHit(core.RayPayload{SampleIndex: uint32(i), Rng: sampling.Seed(uint32(i), 1)}, front, hit)
		require.GreaterOrEqual(t, p.NextDir.Z(), float32(-1e-6), "bounce %d leaked through the surface", i)
		require.Greater(t, p.NextOrigin.Z(), float32(0))
	}

	// Hitting the back side flips the shading normal.
	back := Context{World: w, Ray: core.Ray{Origin: mgl32.Vec3{0, 0, -3}, Dir: mgl32.Vec3{0, 0, 1}}}
	for i := 0; i < 200; i++ {
		p := ao.ClosestHit(core.RayPayload{SampleIndex: uint32(i), Rng: sampling.Seed(uint32(i), 2)}, back, hit)
		require.LessOrEqual(t, p.NextDir.Z(), float32(1e-6))
		require.Less(t, p.NextOrigin.Z(), float32(0))
	}
}

func TestAOMissKeepsPenalties(t *testing.T) {
	ao := NewAmbientOcclusion(nil)
	in := core.RayPayload{Radiance: mgl32.Vec3{2, 2, 2}, Depth: 3}
	out := ao.Miss(in, Context{})
	assert.True(t, out.Terminated)
	assert.Equal(t, in.Radiance, out.Radiance)
	assert.Equal(t, in.Depth, out.Depth)
}

func TestAOFoldInvertsOcclusion(t *testing.T) {
	ao := NewAmbientOcclusion(nil)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ao.Fold(mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec3{}, ao.Fold(mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, mgl32.Vec3{0.25, 0.25, 0.25}, ao.Fold(mgl32.Vec3{0.75, 0.75, 0.75}))
}

func TestAOUsesSuppliedNoise(t *testing.T) {
	noise := sampling.GenerateNoise(16, 42)
	ao := NewAmbientOcclusion(noise)
	assert.Same(t, noise, ao.Noise)

	fallback := NewAmbientOcclusion(nil)
	require.NotNil(t, fallback.Noise)
	assert.Equal(t, 64, fallback.Noise.Size())
}
