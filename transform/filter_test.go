package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelWeights(t *testing.T) {
	var blur, sharpen float64
	for _, k := range BlurKernel {
		blur += k
	}
	for _, k := range SharpenKernel {
		sharpen += k
	}
	assert.Equal(t, 16.0, blur)
	assert.Equal(t, 16.0, sharpen)
}

func TestFiltersKeepUniformImages(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		img := solid(9, 9, []uint8{90, 120, 150, 0xFF}[:channels]...)

		blurred := Blur(img)
		require.Equal(t, channels, blurred.Channels)
		assert.Equal(t, img, blurred, "blur channels=%d", channels)

		sharp := Sharpen(img)
		require.Equal(t, channels, sharp.Channels)
		assert.Equal(t, img, sharp, "sharpen channels=%d", channels)
	}
}

func TestBlurSpreadsEdge(t *testing.T) {
	img := solid(8, 8, 0)
	for y := range 8 {
		for x := 4; x < 8; x++ {
			img.Set(x, y, 0, 160)
		}
	}

	out := Blur(img)
	assert.Equal(t, uint8(0), out.At(0, 4, 0))
	assert.Equal(t, uint8(160), out.At(7, 4, 0))
	assert.Greater(t, out.At(3, 4, 0), uint8(0))
	assert.Less(t, out.At(4, 4, 0), uint8(160))
}

func TestSharpenBoostsEdge(t *testing.T) {
	img := solid(8, 8, 100)
	for y := range 8 {
		for x := 4; x < 8; x++ {
			img.Set(x, y, 0, 150)
		}
	}

	out := Sharpen(img)
	assert.Less(t, out.At(3, 4, 0), uint8(100))
	assert.Greater(t, out.At(4, 4, 0), uint8(150))
	assert.Equal(t, uint8(100), out.At(0, 4, 0))
}

func TestFiltersEmpty(t *testing.T) {
	empty := solid(0, 0, 1, 2, 3)
	assert.Empty(t, Blur(empty).Pix)
	assert.Empty(t, Sharpen(empty).Pix)
}
