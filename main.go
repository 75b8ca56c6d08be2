package main

import (
	"fmt"
	"log/slog"
	"os"

	"convimg/dispatch"
	"convimg/preview"
	"convimg/session"

	"github.com/alecthomas/kong"
	"github.com/gogpu/gg"
)

type CLI struct {
	LogLevel     string             `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	NoPreview    bool               `help:"Do not show the last produced image on the terminal"`
	PreviewWidth int                `help:"Preview width in terminal cells" default:"64"`
	All          dispatch.AllParams `embed:"" prefix:"all-" group:"all"`

	Menu  session.MenuCmd  `cmd:"" default:"withargs" help:"Pick an operation from the interactive menu"`
	Apply session.ApplyCmd `cmd:"" help:"Apply an operation without prompting"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.PreviewWidth < 1 {
		return fmt.Errorf("invalid preview width: %d", c.PreviewWidth)
	}
	if err := dispatch.CheckFactor(c.All.BrightnessFactor); err != nil {
		return fmt.Errorf("invalid brightness factor: %w", err)
	}
	if err := dispatch.CheckFactor(c.All.ContrastFactor); err != nil {
		return fmt.Errorf("invalid contrast factor: %w", err)
	}
	if err := dispatch.CheckDimension("crop width", c.All.CropWidth); err != nil {
		return err
	}
	return dispatch.CheckDimension("crop height", c.All.CropHeight)
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("convimg"),
		kong.Description("Apply simple image transformations, saving every result as PNG next to the source."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/convimg.json", ".convimg.json"),
	}, options...)
	return kong.New(cli, options...)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func (c *CLI) env() *session.Env {
	logger := newLogger(c.LogLevel)
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	var pv session.Previewer = &preview.Terminal{Out: os.Stdout, Width: c.PreviewWidth}
	if c.NoPreview {
		pv = preview.Nop{}
	}

	return &session.Env{
		In:         os.Stdin,
		Out:        os.Stdout,
		Dispatcher: dispatch.New(logger),
		Previewer:  pv,
		All:        c.All,
		Logger:     logger,
	}
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("invalid command line definition", "error", err)
		os.Exit(2)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(cli.env()))
}
