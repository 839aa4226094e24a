package post

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Operator selects the tone-mapping transform applied when resolving the
// accumulator to a display image.
type Operator int

const (
	Filmic Operator = iota
	ACES
	Clamp
)

func (op Operator) String() string {
	switch op {
	case Filmic:
		return "filmic"
	case ACES:
		return "aces"
	case Clamp:
		return "clamp"
	}
	return "unknown"
}

// ParseOperator maps a flag value onto an Operator.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "filmic":
		return Filmic, nil
	case "aces":
		return ACES, nil
	case "clamp":
		return Clamp, nil
	}
	return Filmic, fmt.Errorf("unknown tone-map operator %q", s)
}

// Settings configures the resolve chain. Stops scale linear color by powers
// of two before tone mapping; gamma encodes for display afterwards.
type Settings struct {
	Operator      Operator
	ExposureStops float32
	Gamma         float32
}

func DefaultSettings() Settings {
	return Settings{Operator: Filmic, ExposureStops: 0, Gamma: 2.2}
}

// Uncharted2 filmic constants with the standard white point.
const (
	filmicA = 0.15
	filmicB = 0.50
	filmicC = 0.10
	filmicD = 0.20
	filmicE = 0.02
	filmicF = 0.30
	filmicW = 11.2
)

func filmicCurve(x float32) float32 {
	return (x*(filmicA*x+filmicC*filmicB)+filmicD*filmicE)/(x*(filmicA*x+filmicB)+filmicD*filmicF) - filmicE/filmicF
}

func acesCurve(x float32) float32 {
	return x * (2.51*x + 0.03) / (x*(2.43*x+0.59) + 0.14)
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ToneMap compresses linear HDR color into [0,1] per channel. Negative
// inputs floor to zero before the curve.
func ToneMap(c mgl32.Vec3, op Operator) mgl32.Vec3 {
	var out mgl32.Vec3
	switch op {
	case Filmic:
		white := filmicCurve(filmicW)
		for i := 0; i < 3; i++ {
			out[i] = clamp01(filmicCurve(max(c[i], 0)) / white)
		}
	case ACES:
		for i := 0; i < 3; i++ {
			out[i] = clamp01(acesCurve(max(c[i], 0)))
		}
	default:
		for i := 0; i < 3; i++ {
			out[i] = clamp01(c[i])
		}
	}
	return out
}

// Exposure scales linear color by 2^stops.
func Exposure(c mgl32.Vec3, stops float32) mgl32.Vec3 {
	if stops == 0 {
		return c
	}
	return c.Mul(float32(math.Exp2(float64(stops))))
}

// GammaEncode applies the display transfer curve to a [0,1] color.
func GammaEncode(c mgl32.Vec3, gamma float32) mgl32.Vec3 {
	if gamma <= 0 {
		return c
	}
	inv := 1 / float64(gamma)
	return mgl32.Vec3{
		float32(math.Pow(float64(c.X()), inv)),
		float32(math.Pow(float64(c.Y()), inv)),
		float32(math.Pow(float64(c.Z()), inv)),
	}
}

// Resolve runs the full chain once: exposure, tone map, gamma. The core
// hands over linear unclamped color; this is the only place it gets bent
// for display.
func Resolve(c mgl32.Vec3, s Settings) mgl32.Vec3 {
	return GammaEncode(ToneMap(Exposure(c, s.ExposureStops), s.Operator), s.Gamma)
}
