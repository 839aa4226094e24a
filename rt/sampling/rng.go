package sampling

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Seed mixes a pixel's linear index with the frame counter into an RNG state.
// 16 rounds of a TEA-style schedule give enough avalanche that neighbouring
// pixels and consecutive frames produce unrelated streams.
func Seed(pixelIndex, frameCounter uint32) uint32 {
	v0, v1 := pixelIndex, frameCounter
	var sum uint32
	for i := 0; i < 16; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}
	return v0
}

// Next advances the state by one multiply/xorshift/multiply step and returns
// a draw in [0,1). State is passed and returned by value; callers own it.
func Next(state uint32) (float32, uint32) {
	state *= 0x85ebca6b
	state ^= state >> 13
	state *= 0xc2b2ae35
	return float32(state>>8) * (1.0 / (1 << 24)), state
}

// Next2 packs two sequential draws into a 2-component value.
func Next2(state uint32) (mgl32.Vec2, uint32) {
	x, state := Next(state)
	y, state := Next(state)
	return mgl32.Vec2{x, y}, state
}
