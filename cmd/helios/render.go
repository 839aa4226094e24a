package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/heliosrt/helios"
	"github.com/heliosrt/helios/rt/post"
	"github.com/heliosrt/helios/rt/sampling"
	"github.com/heliosrt/helios/rt/shade"
	"github.com/heliosrt/helios/scene"
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene",
		Value: "patio",
		Usage: "bundled scene name (patio, sphere)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 800,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 600,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 4,
		Usage: "samples per pixel per frame",
	},
	cli.IntFlag{
		Name:  "bounces",
		Value: 8,
		Usage: "path depth cap",
	},
	cli.IntFlag{
		Name:  "frames",
		Value: 16,
		Usage: "number of progressive frames to accumulate",
	},
	cli.UintFlag{
		Name:  "seed-frame",
		Usage: "start the frame counter here to pick another noise realization",
	},
	cli.StringFlag{
		Name:  "policy",
		Value: "material",
		Usage: "shading policy (material, ao)",
	},
	cli.BoolTFlag{
		Name:  "sky",
		Usage: "shade escaped rays with the gradient and sun, sky=false leaves them black",
	},
	cli.StringFlag{
		Name:  "bluenoise",
		Usage: "PNG with tiling noise for the ao policy, generated when empty",
	},
	cli.StringFlag{
		Name:  "tonemap",
		Value: "filmic",
		Usage: "tone-map operator (filmic, aces, clamp)",
	},
	cli.Float64Flag{
		Name:  "exposure",
		Value: 0,
		Usage: "exposure adjustment in stops",
	},
	cli.Float64Flag{
		Name:  "gamma",
		Value: 2.2,
		Usage: "display gamma",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "worker pool size, 0 means one per logical CPU",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Value: 32,
		Usage: "square tile edge handed to each worker",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.png",
		Usage: "image filename for the resolved frame",
	},
	cli.StringFlag{
		Name:  "hdr-out",
		Usage: "optional 16-bit TIFF filename for the linear frame",
	},
}

func buildPolicy(c *cli.Context) (shade.Policy, error) {
	switch c.String("policy") {
	case "material":
		return shade.NewMaterial(shade.Sky{Enabled: c.BoolT("sky")}), nil
	case "ao":
		if path := c.String("bluenoise"); path != "" {
			noise, err := sampling.LoadBlueNoise(path)
			if err != nil {
				return nil, err
			}
			return shade.NewAmbientOcclusion(noise), nil
		}
		return shade.NewAmbientOcclusion(sampling.GenerateNoise(64, 1)), nil
	default:
		return nil, fmt.Errorf("unknown policy %q, expected material or ao", c.String("policy"))
	}
}

func renderAction(c *cli.Context) error {
	log := helios.NewDefaultLogger("helios", c.GlobalBool("v"))

	world, err := scene.ByName(c.String("scene"))
	if err != nil {
		return err
	}
	policy, err := buildPolicy(c)
	if err != nil {
		return err
	}
	op, err := post.ParseOperator(c.String("tonemap"))
	if err != nil {
		return err
	}

	settings := helios.RenderSettings{
		Width:           c.Int("width"),
		Height:          c.Int("height"),
		SamplesPerPixel: c.Int("spp"),
		MaxBounces:      c.Int("bounces"),
		TileSize:        c.Int("tile-size"),
		Workers:         c.Int("workers"),
	}
	r := helios.NewRenderer(world, policy, settings)
	r.SetLogger(log)
	r.StartAtFrame(uint32(c.Uint("seed-frame")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames := c.Int("frames")
	log.Infof("rendering %s with %s policy, %d frames at %s",
		c.String("scene"), policy.Name(), frames, r.Settings())

	start := time.Now()
	if err := r.Render(ctx, frames); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Infof("accumulated %d frames in %s", r.AccumulatedFrames(), time.Since(start).Round(time.Millisecond))

	resolve := post.Settings{
		Operator:      op,
		ExposureStops: float32(c.Float64("exposure")),
		Gamma:         float32(c.Float64("gamma")),
	}
	out := c.String("out")
	if err := r.WritePNG(out, resolve); err != nil {
		return err
	}
	log.Infof("wrote %s", out)

	if hdr := c.String("hdr-out"); hdr != "" {
		if err := r.WriteTIFF(hdr); err != nil {
			return err
		}
		log.Infof("wrote %s", hdr)
	}

	counts := r.Profiler().Counts
	if samples := counts["samples"]; samples > 0 {
		log.Infof("average path length %.2f rays per sample", float64(counts["rays"])/float64(samples))
	}
	log.Infof("frame statistics\n%s", r.Profiler().Table())
	return nil
}
