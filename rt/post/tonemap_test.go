package post

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneMapZeroAndRange(t *testing.T) {
	for _, op := range []Operator{Filmic, ACES, Clamp} {
		zero := ToneMap(mgl32.Vec3{}, op)
		assert.InDelta(t, 0, float64(zero.X()), 1e-5, "%s(0)", op)

		for _, x := range []float32{-2, 0.01, 0.18, 0.5, 1, 4, 100} {
			v := ToneMap(mgl32.Vec3{x, x, x}, op)
			for i := 0; i < 3; i++ {
				if v[i] < 0 || v[i] > 1 {
					t.Fatalf("%s(%v) channel %d out of range: %v", op, x, i, v[i])
				}
			}
		}
	}
}

func TestToneMapMonotone(t *testing.T) {
	for _, op := range []Operator{Filmic, ACES, Clamp} {
		prev := float32(-1)
		for x := float32(0); x < 4; x += 0.05 {
			v := ToneMap(mgl32.Vec3{x, x, x}, op).X()
			if v < prev {
				t.Fatalf("%s not monotone at %v: %v < %v", op, x, v, prev)
			}
			prev = v
		}
	}
}

func TestACESKnownValues(t *testing.T) {
	v := ToneMap(mgl32.Vec3{1, 1, 1}, ACES)
	assert.InDelta(t, 0.804, float64(v.X()), 0.005)

	bright := ToneMap(mgl32.Vec3{20, 20, 20}, ACES)
	assert.Greater(t, bright.X(), float32(0.98))
}

func TestFilmicWhitePoint(t *testing.T) {
	// The white point maps to exactly one before clamping.
	v := ToneMap(mgl32.Vec3{filmicW, filmicW, filmicW}, Filmic)
	assert.InDelta(t, 1, float64(v.X()), 1e-5)

	mid := ToneMap(mgl32.Vec3{0.18, 0.18, 0.18}, Filmic)
	assert.Greater(t, mid.X(), float32(0))
	assert.Less(t, mid.X(), float32(0.5))
}

func TestExposureStops(t *testing.T) {
	c := mgl32.Vec3{0.25, 0.5, 1}
	up := Exposure(c, 1)
	assert.Equal(t, mgl32.Vec3{0.5, 1, 2}, up)

	down := Exposure(c, -2)
	assert.Equal(t, mgl32.Vec3{0.0625, 0.125, 0.25}, down)

	assert.Equal(t, c, Exposure(c, 0))
}

func TestGammaEncode(t *testing.T) {
	v := GammaEncode(mgl32.Vec3{0.25, 1, 0}, 2)
	assert.InDelta(t, 0.5, float64(v.X()), 1e-5)
	assert.InDelta(t, 1, float64(v.Y()), 1e-5)
	assert.InDelta(t, 0, float64(v.Z()), 1e-5)

	// Non-positive gamma passes through.
	c := mgl32.Vec3{0.3, 0.6, 0.9}
	assert.Equal(t, c, GammaEncode(c, 0))
}

func TestResolveChain(t *testing.T) {
	s := Settings{Operator: Clamp, ExposureStops: 1, Gamma: 2}
	v := Resolve(mgl32.Vec3{0.125, 2, 0}, s)
	assert.InDelta(t, 0.5, float64(v.X()), 1e-5)
	assert.InDelta(t, 1, float64(v.Y()), 1e-5)
	assert.InDelta(t, 0, float64(v.Z()), 1e-5)
}

func TestParseOperator(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Operator
	}{
		{"filmic", Filmic},
		{"aces", ACES},
		{"clamp", Clamp},
	} {
		op, err := ParseOperator(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, op)
		assert.Equal(t, tc.in, op.String())
	}

	_, err := ParseOperator("reinhard")
	require.Error(t, err)
}
