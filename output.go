package helios

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/tiff"

	"github.com/heliosrt/helios/rt/post"
)

// Resolve runs the accumulation buffer through the post chain into an
// 8-bit image.
func (r *Renderer) Resolve(s post.Settings) *image.RGBA {
	w, h := r.settings.Width, r.settings.Height
	r.profiler.BeginScope("resolve")
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := post.Resolve(r.accum[py*w+px], s)
			img.SetRGBA(px, py, color.RGBA{
				R: to8(c.X()),
				G: to8(c.Y()),
				B: to8(c.Z()),
				A: 255,
			})
		}
	}
	r.profiler.EndScope("resolve")
	return img
}

// WritePNG resolves the frame with the given post settings and writes it.
func (r *Renderer) WritePNG(path string, s post.Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, r.Resolve(s)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// WriteTIFF stores the linear means as a deflate-compressed 16-bit TIFF,
// bypassing the post chain. Radiance above one clips.
func (r *Renderer) WriteTIFF(path string) error {
	w, h := r.settings.Width, r.settings.Height
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := r.accum[py*w+px]
			img.SetRGBA64(px, py, color.RGBA64{
				R: to16(c.X()),
				G: to16(c.Y()),
				B: to16(c.Z()),
				A: 0xffff,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(f, img, opts); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func to16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*65535 + 0.5)
}
