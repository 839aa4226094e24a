package helios

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
	"github.com/heliosrt/helios/rt/sampling"
	"github.com/heliosrt/helios/rt/shade"
)

const (
	primaryTMin = 0.001
	primaryTMax = 10000
)

// Renderer drives progressive tracing: every RenderFrame dispatches one
// frame's worth of samples across a worker pool and folds the estimates
// into the running per-pixel mean. A camera move restarts the mean on the
// next frame by resetting the blend weight to one, not by clearing the
// buffer.
type Renderer struct {
	settings RenderSettings
	log      Logger

	world  *core.World
	accel  *accel.Accel
	policy shade.Policy
	camera *core.Camera

	accum      []mgl32.Vec3
	frame      uint32
	startFrame uint32
	lastView   mgl32.Mat4
	primed     bool

	profiler *Profiler
}

// NewRenderer builds the acceleration structure for world up front; the
// world must not change afterwards. A nil world or policy is a programming
// error and fails fast.
func NewRenderer(world *core.World, policy shade.Policy, settings RenderSettings) *Renderer {
	if world == nil {
		panic("NewRenderer: world is nil")
	}
	if policy == nil {
		panic("NewRenderer: policy is nil")
	}
	settings = settings.withDefaults()
	return &Renderer{
		settings: settings,
		log:      NewNopLogger(),
		world:    world,
		accel:    accel.Build(world),
		policy:   policy,
		camera:   core.NewCamera(),
		accum:    make([]mgl32.Vec3, settings.Width*settings.Height),
		profiler: NewProfiler(),
	}
}

func (r *Renderer) SetLogger(l Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	r.log = l
}

func (r *Renderer) Camera() *core.Camera     { return r.camera }
func (r *Renderer) Settings() RenderSettings { return r.settings }
func (r *Renderer) Policy() shade.Policy     { return r.policy }
func (r *Renderer) Profiler() *Profiler      { return r.profiler }

// Frame is the counter of the next frame to trace.
func (r *Renderer) Frame() uint32 { return r.frame }

// AccumulatedFrames reports how many frames the current mean includes.
func (r *Renderer) AccumulatedFrames() uint32 {
	if !r.primed {
		return 0
	}
	return r.frame - r.startFrame
}

// ResetAccumulation makes the next frame overwrite the mean instead of
// blending into it.
func (r *Renderer) ResetAccumulation() {
	r.startFrame = r.frame
}

// StartAtFrame moves the frame counter, which shifts every pixel's seed and
// so picks a different noise realization. Accumulation restarts.
func (r *Renderer) StartAtFrame(frame uint32) {
	r.frame = frame
	r.startFrame = frame
}

// FrameBuffer returns a copy of the linear per-pixel means.
func (r *Renderer) FrameBuffer() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(r.accum))
	copy(out, r.accum)
	return out
}

// blend folds one frame's estimate into the running mean. A weight of one
// replaces the mean outright, which is how accumulation restarts.
func blend(old, estimate mgl32.Vec3, weight float32) mgl32.Vec3 {
	return old.Add(estimate.Sub(old).Mul(weight))
}

// blendWeight is 1/n for the n-th frame since the last restart.
func blendWeight(frame, startFrame uint32) float32 {
	return 1 / float32(frame-startFrame+1)
}

type tileRect struct {
	x0, y0, x1, y1 int
}

// RenderFrame traces one frame and folds it into the accumulation buffer.
// Cancellation is honored between tiles; a canceled frame leaves the buffer
// partially blended and does not advance the frame counter.
func (r *Renderer) RenderFrame(ctx context.Context) error {
	w, h := r.settings.Width, r.settings.Height
	uniforms := r.camera.Uniforms(uint32(w), uint32(h), r.frame)

	if !r.primed || uniforms.View != r.lastView {
		r.startFrame = r.frame
		r.lastView = uniforms.View
		r.primed = true
		r.log.Debugf("camera moved, accumulation restarts at frame %d", r.frame)
	}
	weight := blendWeight(r.frame, r.startFrame)

	ts := r.settings.TileSize
	tilesX := (w + ts - 1) / ts
	tilesY := (h + ts - 1) / ts
	tiles := make(chan tileRect, tilesX*tilesY)
	for y := 0; y < h; y += ts {
		for x := 0; x < w; x += ts {
			tiles <- tileRect{x0: x, y0: y, x1: min(x+ts, w), y1: min(y+ts, h)}
		}
	}
	close(tiles)

	r.profiler.BeginScope("trace")

	var wg sync.WaitGroup
	var raysTraced atomic.Uint64
	for i := 0; i < r.settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local uint64
			for t := range tiles {
				if ctx.Err() != nil {
					break
				}
				for py := t.y0; py < t.y1; py++ {
					for px := t.x0; px < t.x1; px++ {
						est, rays := r.tracePixel(&uniforms, px, py)
						local += rays
						idx := py*w + px
						r.accum[idx] = blend(r.accum[idx], est, weight)
					}
				}
			}
			raysTraced.Add(local)
		}()
	}
	wg.Wait()

	r.profiler.EndScope("trace")
	if err := ctx.Err(); err != nil {
		return err
	}

	r.profiler.SetCount("rays", int64(raysTraced.Load()))
	r.profiler.SetCount("pixels", int64(w*h))
	r.profiler.SetCount("samples", int64(w*h*r.settings.SamplesPerPixel))

	r.frame++
	r.log.Debugf("frame %d done, %d rays, policy %s", r.frame-1, raysTraced.Load(), r.policy.Name())
	return nil
}

// Render traces the requested number of frames back to back.
func (r *Renderer) Render(ctx context.Context, frames int) error {
	for i := 0; i < frames; i++ {
		if err := r.RenderFrame(ctx); err != nil {
			return err
		}
	}
	return nil
}

// tracePixel traces every sample for one pixel. The generator state is
// seeded once per pixel per frame and threads through every sample's payload
// so consecutive samples never repeat a sequence.
func (r *Renderer) tracePixel(u *core.FrameUniforms, px, py int) (mgl32.Vec3, uint64) {
	w, h := r.settings.Width, r.settings.Height
	spp := r.settings.SamplesPerPixel
	depthCap := uint32(r.settings.MaxBounces)

	state := sampling.Seed(uint32(py*w+px), u.Counter())

	var estimate mgl32.Vec3
	var rays uint64
	for s := 0; s < spp; s++ {
		// Each sample jitters inside the pixel footprint before unprojection.
		var jitter mgl32.Vec2
		jitter, state = sampling.Next2(state)
		ndc := mgl32.Vec2{
			(float32(px)+jitter.X())/float32(w)*2 - 1,
			1 - (float32(py)+jitter.Y())/float32(h)*2,
		}
		ray := u.PrimaryRay(ndc, primaryTMin, primaryTMax)
		p := core.RayPayload{SampleIndex: uint32(s), Rng: state}
		for {
			rays++
			sctx := shade.Context{World: r.world, Ray: ray, Px: px, Py: py}
			if hit, ok := r.accel.Intersect(ray); ok {
				p = r.policy.ClosestHit(p, sctx, hit)
			} else {
				p = r.policy.Miss(p, sctx)
			}
			if p.Terminated || p.Depth > depthCap {
				break
			}
			ray = p.NextRay()
		}
		state = p.Rng
		estimate = estimate.Add(r.policy.Fold(p.Radiance))
	}
	return estimate.Mul(1 / float32(spp)), rays
}
