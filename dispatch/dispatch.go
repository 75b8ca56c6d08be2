package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"convimg/pixbuf"

	"github.com/samber/lo"
)

// OutputPath derives the file a command result is written to: the input's
// folder, its name up to the first dot, and the suffix, as PNG.
func OutputPath(input, suffix string) string {
	dir, base := filepath.Split(input)
	stem, _, _ := strings.Cut(base, ".")
	if stem == "" {
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", stem, suffix))
}

type Result struct {
	Command Command
	Path    string
	// Image is the command output. It is the zero Image if the command
	// could not be applied.
	Image pixbuf.Image
	Err   error
}

func (r Result) Applied() bool {
	return r.Image.Channels > 0
}

type Report struct {
	Results []Result
}

// Last returns the most recent image a command produced.
func (r Report) Last() (pixbuf.Image, bool) {
	res, _, ok := lo.FindLastIndexOf(r.Results, Result.Applied)
	return res.Image, ok
}

func (r Report) Saved() []string {
	return lo.FilterMap(r.Results, func(res Result, _ int) (string, bool) {
		return res.Path, res.Err == nil
	})
}

func (r Report) Err() error {
	return errors.Join(lo.FilterMap(r.Results, func(res Result, _ int) (error, bool) {
		return res.Err, res.Err != nil
	})...)
}

type Dispatcher struct {
	Save   func(img pixbuf.Image, path string) error
	Logger *slog.Logger
}

func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		Save:   pixbuf.Save,
		Logger: logger,
	}
}

// Run applies every command to img and saves each output next to input.
// Every command starts from img. A failing command does not stop the others.
func (d *Dispatcher) Run(input string, img pixbuf.Image, cmds ...Command) Report {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("file", input)

	var report Report
	for _, cmd := range cmds {
		res := Result{Command: cmd}
		opLog := logger.With("op", cmd.Operation().String())

		out, err := cmd.Apply(img)
		if err != nil {
			res.Err = fmt.Errorf("could not apply %s: %w", cmd.Operation(), err)
			opLog.Error("could not apply operation", "error", err)
			report.Results = append(report.Results, res)
			continue
		}
		res.Image = out
		res.Path = OutputPath(input, cmd.Suffix())

		if err = d.Save(out, res.Path); err != nil {
			res.Err = fmt.Errorf("could not save %s result %q: %w", cmd.Operation(), res.Path, err)
			opLog.Error("could not save image", "dest", res.Path, "error", err)
		} else {
			opLog.Debug("saved", "dest", res.Path, "width", out.Width, "height", out.Height,
				"channels", out.Channels)
		}
		report.Results = append(report.Results, res)
	}

	saved := len(report.Saved())
	logger.Info("stats", "saved", saved, "errors", len(report.Results)-saved, "total", len(report.Results))

	return report
}
