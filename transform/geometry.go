package transform

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"convimg/pixbuf"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

type Direction int

const (
	Horizontal Direction = iota + 1
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: flip direction %q, should be horizontal or vertical", ErrInvalidArgument, s)
	}
}

// Flip mirrors columns (Horizontal) or rows (Vertical).
func Flip(img pixbuf.Image, dir Direction) (pixbuf.Image, error) {
	out := pixbuf.New(img.Height, img.Width, img.Channels)
	rowLen := img.Width * img.Channels

	switch dir {
	case Horizontal:
		for y := range img.Height {
			for x := range img.Width {
				src := img.Offset(x, y)
				dst := out.Offset(img.Width-1-x, y)
				copy(out.Pix[dst:dst+img.Channels], img.Pix[src:src+img.Channels])
			}
		}
	case Vertical:
		for y := range img.Height {
			src := y * rowLen
			dst := (img.Height - 1 - y) * rowLen
			copy(out.Pix[dst:dst+rowLen], img.Pix[src:src+rowLen])
		}
	default:
		return pixbuf.Image{}, fmt.Errorf("%w: flip direction %s", ErrInvalidArgument, dir)
	}

	return out, nil
}

// CropCenter cuts a width x height rectangle around the image center.
func CropCenter(img pixbuf.Image, width, height int) (pixbuf.Image, error) {
	switch {
	case width <= 0 || height <= 0:
		return pixbuf.Image{}, fmt.Errorf("%w: crop size %dx%d", ErrInvalidArgument, width, height)
	case width > img.Width || height > img.Height:
		return pixbuf.Image{}, fmt.Errorf("%w: crop size %dx%d exceeds image size %dx%d",
			ErrInvalidArgument, width, height, img.Width, img.Height)
	}

	left := (img.Width - width) / 2
	top := (img.Height - height) / 2

	out := pixbuf.New(height, width, img.Channels)
	rowLen := width * img.Channels
	for y := range height {
		src := img.Offset(left, top+y)
		copy(out.Pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return out, nil
}

// CircleMask rasterizes the ellipse inscribed in a width x height box.
// Samples are either fully opaque or fully transparent.
func CircleMask(width, height int) *image.Alpha {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	rx, ry := float64(width)/2, float64(height)/2
	dc.DrawEllipse(rx, ry, rx, ry)
	coverage := dc.AsMask()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			if coverage.At(x, y) >= 0x80 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xFF})
			}
		}
	}
	return mask
}

// CropCircle keeps the inscribed ellipse and makes everything outside it
// transparent. The result always has an alpha channel.
func CropCircle(img pixbuf.Image) pixbuf.Image {
	if img.Empty() {
		return pixbuf.New(img.Height, img.Width, 4)
	}

	r := img.Bounds()
	canvas := image.NewNRGBA(r)
	draw.DrawMask(canvas, r, img.ToImage(), image.Point{}, CircleMask(img.Width, img.Height), image.Point{}, draw.Over)

	return pixbuf.FromImageChannels(canvas, 4)
}
