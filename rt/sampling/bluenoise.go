package sampling

import (
	"fmt"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// BlueNoise is a square 2D table of sample pairs used to decorrelate
// hemisphere sampling. Lookups wrap toroidally.
type BlueNoise struct {
	size int
	rg   []mgl32.Vec2
}

// LoadBlueNoise decodes a PNG noise tile and keeps its red/green channels.
// Non-square images are cropped to the top-left square.
func LoadBlueNoise(path string) (*BlueNoise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open noise tile: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode noise tile %s: %w", path, err)
	}
	bounds := img.Bounds()
	size := bounds.Dx()
	if bounds.Dy() < size {
		size = bounds.Dy()
	}
	if size <= 0 {
		return nil, fmt.Errorf("noise tile %s is empty", path)
	}

	n := &BlueNoise{size: size, rg: make([]mgl32.Vec2, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			n.rg[y*size+x] = mgl32.Vec2{
				float32(r) / 0xffff,
				float32(g) / 0xffff,
			}
		}
	}
	return n, nil
}

// GenerateNoise fills a table from the hash stream. Its spectrum is white,
// not blue; prefer LoadBlueNoise with a real tile when the asset exists.
func GenerateNoise(size int, seed uint32) *BlueNoise {
	if size < 1 {
		size = 1
	}
	n := &BlueNoise{size: size, rg: make([]mgl32.Vec2, size*size)}
	for i := range n.rg {
		state := Seed(uint32(i), seed)
		n.rg[i], _ = Next2(state)
	}
	return n
}

func (n *BlueNoise) Size() int {
	return n.size
}

// Sample returns the table entry at (x,y), wrapping either coordinate.
func (n *BlueNoise) Sample(x, y int) mgl32.Vec2 {
	x %= n.size
	if x < 0 {
		x += n.size
	}
	y %= n.size
	if y < 0 {
		y += n.size
	}
	return n.rg[y*n.size+x]
}
