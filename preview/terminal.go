// Package preview shows images on a text terminal.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"convimg/pixbuf"

	"github.com/disintegration/imaging"
)

const DefaultWidth = 64

// Terminal draws images with 24-bit colour escape codes. Every character
// cell holds two pixels: the upper one as foreground of a half block, the
// lower one as background.
type Terminal struct {
	Out io.Writer
	// Width is the maximum preview width in cells.
	Width int
}

func (t *Terminal) Preview(img pixbuf.Image) error {
	if img.Empty() {
		return nil
	}

	width := t.Width
	if width <= 0 {
		width = DefaultWidth
	}
	// cells are about twice as high as wide, two pixel rows share a cell
	small := imaging.Fit(img.ToImage(), width, width, imaging.Box)

	w := bufio.NewWriter(t.Out)
	if err := render(w, small); err != nil {
		return fmt.Errorf("could not render preview: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not write preview: %w", err)
	}
	return nil
}

func render(w *bufio.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := flatten(img.NRGBAAt(x, y))
			bottom := color.RGBA{}
			if y+1 < b.Max.Y {
				bottom = flatten(img.NRGBAAt(x, y+1))
			}
			if _, err := fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\x1b[0m\n"); err != nil {
			return err
		}
	}
	return nil
}

// flatten composes c over black.
func flatten(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Nop discards previews.
type Nop struct{}

func (Nop) Preview(pixbuf.Image) error { return nil }
