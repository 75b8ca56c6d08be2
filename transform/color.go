package transform

import (
	"errors"
	"math"

	"convimg/pixbuf"

	"github.com/samber/lo"
)

var ErrInvalidArgument = errors.New("invalid argument")

var (
	// LumaWeights are the R, G, B weights of the luma projection.
	LumaWeights = [3]float64{0.2989, 0.5870, 0.1140}
	// SepiaWeights collapse R, G, B into a single tone value.
	SepiaWeights = [3]float64{0.393, 0.769, 0.189}
	// SepiaOffset is added to the tone value for the R, G and B outputs.
	SepiaOffset = [3]float64{40, 20, -20}
)

// clamp converts v to a sample, truncating toward zero.
func clamp(v float64) uint8 {
	return uint8(lo.Clamp(v, 0, 255))
}

func checkFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return ErrInvalidArgument
	}
	return nil
}

// Brightness scales every sample, alpha included.
func Brightness(img pixbuf.Image, factor float64) (pixbuf.Image, error) {
	if err := checkFactor(factor); err != nil {
		return pixbuf.Image{}, err
	}

	out := pixbuf.New(img.Height, img.Width, img.Channels)
	for i, s := range img.Pix {
		out.Pix[i] = clamp(float64(s) * factor)
	}
	return out, nil
}

// Contrast stretches every sample away from the image mean. The mean is
// taken over all samples of all channels and truncated.
func Contrast(img pixbuf.Image, factor float64) (pixbuf.Image, error) {
	if err := checkFactor(factor); err != nil {
		return pixbuf.Image{}, err
	}

	out := pixbuf.New(img.Height, img.Width, img.Channels)
	if len(img.Pix) == 0 {
		return out, nil
	}

	var sum uint64
	for _, s := range img.Pix {
		sum += uint64(s)
	}
	mean := float64(sum / uint64(len(img.Pix)))

	for i, s := range img.Pix {
		out.Pix[i] = clamp((float64(s)-mean)*factor + mean)
	}
	return out, nil
}

func rgb(img pixbuf.Image, off int) (r, g, b float64) {
	if img.Channels < 3 {
		v := float64(img.Pix[off])
		return v, v, v
	}
	return float64(img.Pix[off]), float64(img.Pix[off+1]), float64(img.Pix[off+2])
}

// Grayscale projects RGB to a single luma channel.
func Grayscale(img pixbuf.Image) pixbuf.Image {
	if img.Channels == 1 {
		return img.Clone()
	}

	out := pixbuf.New(img.Height, img.Width, 1)
	for i, off := 0, 0; i < len(out.Pix); i, off = i+1, off+img.Channels {
		r, g, b := rgb(img, off)
		out.Pix[i] = clamp(r*LumaWeights[0] + g*LumaWeights[1] + b*LumaWeights[2])
	}
	return out
}

// Sepia tints the image. Channels past RGB are dropped.
func Sepia(img pixbuf.Image) pixbuf.Image {
	out := pixbuf.New(img.Height, img.Width, 3)
	for i, off := 0, 0; i < len(out.Pix); i, off = i+3, off+img.Channels {
		r, g, b := rgb(img, off)
		tone := r*SepiaWeights[0] + g*SepiaWeights[1] + b*SepiaWeights[2]
		for c := range 3 {
			out.Pix[i+c] = clamp(tone + SepiaOffset[c])
		}
	}
	return out
}
