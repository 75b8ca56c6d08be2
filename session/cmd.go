package session

import (
	"fmt"

	"convimg/dispatch"

	"github.com/alecthomas/kong"
)

type MenuCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Image to process, asked for when not given"`
}

func (c *MenuCmd) Run(env *Env) error {
	return New(env).Run(c.Path)
}

type ApplyCmd struct {
	Path   string  `arg:"" type:"path" help:"Image to process"`
	Op     string  `short:"o" required:"" help:"Operation to apply" enum:"all,brightness,contrast,flip-horizontal,flip-vertical,grayscale,sepia,blur,sharpen,crop-center,crop-circle"`
	Factor float64 `short:"f" help:"Brightness or contrast factor" default:"1.5"`
	Width  int     `help:"Crop width" default:"200" group:"crop"`
	Height int     `help:"Crop height" default:"200" group:"crop"`

	operation dispatch.Operation `kong:"-"`
}

func (c *ApplyCmd) Validate(kctx *kong.Context) error {
	op, err := dispatch.ParseOperation(c.Op)
	if err != nil {
		return err
	}
	c.operation = op

	switch op {
	case dispatch.Brightness, dispatch.Contrast:
		if err := dispatch.CheckFactor(c.Factor); err != nil {
			return fmt.Errorf("invalid %s factor: %w", op, err)
		}
	case dispatch.CropCenter:
		if err := dispatch.CheckDimension("width", c.Width); err != nil {
			return err
		}
		if err := dispatch.CheckDimension("height", c.Height); err != nil {
			return err
		}
	}
	return nil
}

func (c *ApplyCmd) Run(env *Env) error {
	s := New(env)
	img, err := s.load(c.Path)
	if err != nil {
		return err
	}

	cmds, err := dispatch.CommandsFor(c.operation, dispatch.Params{
		Factor: c.Factor,
		Width:  c.Width,
		Height: c.Height,
	}, env.All)
	if err != nil {
		return err
	}

	return s.execute(c.Path, img, cmds)
}
