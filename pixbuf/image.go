package pixbuf

import (
	"image"
	"image/color"
)

type Image struct {
	Height   int
	Width    int
	Channels int
	// Pix holds the samples row by row. The sample for channel c of the pixel
	// at (x, y) is Pix[(y*Width+x)*Channels+c].
	Pix []uint8
}

func New(height, width, channels int) Image {
	return Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, height*width*channels),
	}
}

func (m Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m Image) Offset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

func (m Image) At(x, y, c int) uint8 {
	return m.Pix[m.Offset(x, y)+c]
}

func (m Image) Set(x, y, c int, v uint8) {
	m.Pix[m.Offset(x, y)+c] = v
}

func (m Image) Clone() Image {
	out := New(m.Height, m.Width, m.Channels)
	copy(out.Pix, m.Pix)
	return out
}

// Empty reports whether the image has no pixels.
func (m Image) Empty() bool {
	return m.Width <= 0 || m.Height <= 0
}

type opaquer interface {
	Opaque() bool
}

// FromImage copies img into a sample buffer. Gray images get one channel,
// opaque images three and everything else four.
func FromImage(img image.Image) Image {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return FromImageChannels(img, 1)
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return FromImageChannels(img, 3)
	}
	return FromImageChannels(img, 4)
}

func FromImageChannels(img image.Image, channels int) Image {
	b := img.Bounds()
	out := New(b.Dy(), b.Dx(), channels)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if channels == 1 {
				out.Pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
				i++
				continue
			}

			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
			if channels == 4 {
				out.Pix[i+3] = c.A
			}
			i += channels
		}
	}
	return out
}

func (m Image) ToImage() image.Image {
	r := m.Bounds()
	if m.Channels == 1 {
		g := image.NewGray(r)
		copy(g.Pix, m.Pix)
		return g
	}

	out := image.NewNRGBA(r)
	for i, j := 0, 0; i < len(m.Pix); i, j = i+m.Channels, j+4 {
		out.Pix[j], out.Pix[j+1], out.Pix[j+2] = m.Pix[i], m.Pix[i+1], m.Pix[i+2]
		if m.Channels == 4 {
			out.Pix[j+3] = m.Pix[i+3]
		} else {
			out.Pix[j+3] = 0xFF
		}
	}
	return out
}
