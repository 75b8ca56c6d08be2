package dispatch

import (
	"fmt"
	"strings"

	"convimg/pixbuf"
	"convimg/transform"
)

type Operation int

const (
	All Operation = iota
	Brightness
	Contrast
	FlipHorizontal
	FlipVertical
	Grayscale
	Sepia
	Blur
	Sharpen
	CropCenter
	CropCircle
)

var operationNames = [...]string{
	All:            "all",
	Brightness:     "brightness",
	Contrast:       "contrast",
	FlipHorizontal: "flip-horizontal",
	FlipVertical:   "flip-vertical",
	Grayscale:      "grayscale",
	Sepia:          "sepia",
	Blur:           "blur",
	Sharpen:        "sharpen",
	CropCenter:     "crop-center",
	CropCircle:     "crop-circle",
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range operationNames {
		if name == s {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, s)
}

// Command is one operation together with its parameters. The set of
// implementations is closed.
type Command interface {
	Operation() Operation
	// Suffix names the output file of the command.
	Suffix() string
	Apply(img pixbuf.Image) (pixbuf.Image, error)

	sealed()
}

type (
	BrightnessCmd struct{ Factor float64 }
	ContrastCmd   struct{ Factor float64 }
	FlipCmd       struct{ Direction transform.Direction }
	GrayscaleCmd  struct{}
	SepiaCmd      struct{}
	BlurCmd       struct{}
	SharpenCmd    struct{}
	CropCenterCmd struct{ Width, Height int }
	CropCircleCmd struct{}
)

func (BrightnessCmd) Operation() Operation { return Brightness }
func (ContrastCmd) Operation() Operation   { return Contrast }
func (GrayscaleCmd) Operation() Operation  { return Grayscale }
func (SepiaCmd) Operation() Operation      { return Sepia }
func (BlurCmd) Operation() Operation       { return Blur }
func (SharpenCmd) Operation() Operation    { return Sharpen }
func (CropCenterCmd) Operation() Operation { return CropCenter }
func (CropCircleCmd) Operation() Operation { return CropCircle }

func (c FlipCmd) Operation() Operation {
	if c.Direction == transform.Vertical {
		return FlipVertical
	}
	return FlipHorizontal
}

func (BrightnessCmd) Suffix() string { return "brightness" }
func (ContrastCmd) Suffix() string   { return "contrast" }
func (c FlipCmd) Suffix() string     { return "flip_" + c.Direction.String() }
func (GrayscaleCmd) Suffix() string  { return "grayscale" }
func (SepiaCmd) Suffix() string      { return "sepia" }
func (BlurCmd) Suffix() string       { return "blur" }
func (SharpenCmd) Suffix() string    { return "sharp" }
func (CropCenterCmd) Suffix() string { return "cropped" }
func (CropCircleCmd) Suffix() string { return "circle_cropped" }

func (c BrightnessCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Brightness(img, c.Factor)
}

func (c ContrastCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Contrast(img, c.Factor)
}

func (c FlipCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Flip(img, c.Direction)
}

func (GrayscaleCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Grayscale(img), nil
}

func (SepiaCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Sepia(img), nil
}

func (BlurCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Blur(img), nil
}

func (SharpenCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.Sharpen(img), nil
}

func (c CropCenterCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.CropCenter(img, c.Width, c.Height)
}

func (CropCircleCmd) Apply(img pixbuf.Image) (pixbuf.Image, error) {
	return transform.CropCircle(img), nil
}

func (BrightnessCmd) sealed() {}
func (ContrastCmd) sealed()   {}
func (FlipCmd) sealed()       {}
func (GrayscaleCmd) sealed()  {}
func (SepiaCmd) sealed()      {}
func (BlurCmd) sealed()       {}
func (SharpenCmd) sealed()    {}
func (CropCenterCmd) sealed() {}
func (CropCircleCmd) sealed() {}

// AllParams holds the parameters used when every operation is run at once.
type AllParams struct {
	BrightnessFactor float64 `help:"Brightness factor used by the all operation" default:"1.5"`
	ContrastFactor   float64 `help:"Contrast factor used by the all operation" default:"1.5"`
	CropWidth        int     `help:"Crop width used by the all operation" default:"200"`
	CropHeight       int     `help:"Crop height used by the all operation" default:"200"`
}

func DefaultAllParams() AllParams {
	return AllParams{
		BrightnessFactor: 1.5,
		ContrastFactor:   1.5,
		CropWidth:        200,
		CropHeight:       200,
	}
}

// AllCommands lists every single-result operation in menu order. Each one is
// meant to run against the original image.
func AllCommands(p AllParams) []Command {
	return []Command{
		BrightnessCmd{Factor: p.BrightnessFactor},
		ContrastCmd{Factor: p.ContrastFactor},
		FlipCmd{Direction: transform.Horizontal},
		FlipCmd{Direction: transform.Vertical},
		GrayscaleCmd{},
		SepiaCmd{},
		BlurCmd{},
		SharpenCmd{},
		CropCenterCmd{Width: p.CropWidth, Height: p.CropHeight},
		CropCircleCmd{},
	}
}

// Params carries user supplied values for the operations that need them.
type Params struct {
	Factor    float64
	Direction string
	Width     int
	Height    int
}

// CommandsFor builds the commands for op. A non-empty Direction overrides
// the direction implied by a flip operation.
func CommandsFor(op Operation, p Params, all AllParams) ([]Command, error) {
	var cmd Command
	switch op {
	case All:
		return AllCommands(all), nil
	case Brightness:
		if err := CheckFactor(p.Factor); err != nil {
			return nil, err
		}
		cmd = BrightnessCmd{Factor: p.Factor}
	case Contrast:
		if err := CheckFactor(p.Factor); err != nil {
			return nil, err
		}
		cmd = ContrastCmd{Factor: p.Factor}
	case FlipHorizontal, FlipVertical:
		dir := transform.Horizontal
		if op == FlipVertical {
			dir = transform.Vertical
		}
		if p.Direction != "" {
			var err error
			if dir, err = transform.ParseDirection(p.Direction); err != nil {
				return nil, err
			}
		}
		cmd = FlipCmd{Direction: dir}
	case Grayscale:
		cmd = GrayscaleCmd{}
	case Sepia:
		cmd = SepiaCmd{}
	case Blur:
		cmd = BlurCmd{}
	case Sharpen:
		cmd = SharpenCmd{}
	case CropCenter:
		if err := CheckDimension("width", p.Width); err != nil {
			return nil, err
		}
		if err := CheckDimension("height", p.Height); err != nil {
			return nil, err
		}
		cmd = CropCenterCmd{Width: p.Width, Height: p.Height}
	case CropCircle:
		cmd = CropCircleCmd{}
	default:
		return nil, fmt.Errorf("%w: unknown operation %s", ErrInvalidArgument, op)
	}
	return []Command{cmd}, nil
}
