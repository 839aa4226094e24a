package helios

import (
	"fmt"
	"runtime"
)

// RenderSettings fixes the output size and how much tracing one frame does.
// Zero values fall back to defaults at renderer construction.
type RenderSettings struct {
	Width  int
	Height int

	// SamplesPerPixel is the number of independent paths averaged into one
	// frame's estimate for each pixel.
	SamplesPerPixel int

	// MaxBounces caps path depth. A path whose depth passes the cap is cut
	// regardless of what the shading policy wanted next.
	MaxBounces int

	// TileSize is the edge length of the square work units handed to the
	// worker pool.
	TileSize int

	// Workers is the pool size. Zero means one worker per logical CPU.
	Workers int
}

func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 4,
		MaxBounces:      8,
		TileSize:        32,
		Workers:         runtime.NumCPU(),
	}
}

func (s RenderSettings) withDefaults() RenderSettings {
	def := DefaultRenderSettings()
	if s.Width <= 0 {
		s.Width = def.Width
	}
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.SamplesPerPixel <= 0 {
		s.SamplesPerPixel = def.SamplesPerPixel
	}
	if s.MaxBounces <= 0 {
		s.MaxBounces = def.MaxBounces
	}
	if s.TileSize <= 0 {
		s.TileSize = def.TileSize
	}
	if s.Workers <= 0 {
		s.Workers = def.Workers
	}
	return s
}

func (s RenderSettings) String() string {
	return fmt.Sprintf("%dx%d spp=%d bounces=%d tile=%d workers=%d",
		s.Width, s.Height, s.SamplesPerPixel, s.MaxBounces, s.TileSize, s.Workers)
}
