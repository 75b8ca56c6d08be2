package transform

import (
	"convimg/pixbuf"

	"github.com/disintegration/imaging"
)

var (
	// BlurKernel is a 5x5 low-pass ring, weights sum to 16.
	BlurKernel = [25]float64{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	}
	// SharpenKernel boosts the center against its neighbours, weights sum to 16.
	SharpenKernel = [9]float64{
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2,
	}
)

var normalized = &imaging.ConvolveOptions{Normalize: true}

// Blur and Sharpen keep alpha and channel layout of the source.
func Blur(img pixbuf.Image) pixbuf.Image {
	if img.Empty() {
		return img.Clone()
	}
	return pixbuf.FromImageChannels(imaging.Convolve5x5(img.ToImage(), BlurKernel, normalized), img.Channels)
}

func Sharpen(img pixbuf.Image) pixbuf.Image {
	if img.Empty() {
		return img.Clone()
	}
	return pixbuf.FromImageChannels(imaging.Convolve3x3(img.ToImage(), SharpenKernel, normalized), img.Channels)
}
