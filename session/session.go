package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"convimg/dispatch"
	"convimg/pixbuf"
)

type Previewer interface {
	Preview(img pixbuf.Image) error
}

// Env holds what a run needs from the outside world.
type Env struct {
	In         io.Reader
	Out        io.Writer
	Dispatcher *dispatch.Dispatcher
	Previewer  Previewer
	All        dispatch.AllParams
	Logger     *slog.Logger
	// Load defaults to pixbuf.Load.
	Load func(path string) (pixbuf.Image, error)
}

// Session drives one interactive run: load, menu, dispatch, preview.
type Session struct {
	env     *Env
	scanner *bufio.Scanner
	logger  *slog.Logger
}

func New(env *Env) *Session {
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		env:     env,
		scanner: bufio.NewScanner(env.In),
		logger:  logger,
	}
}

func (s *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.env.Out, format, args...); err != nil {
		s.logger.Error("could not write to terminal", "error", err)
	}
}

func (s *Session) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.scanner.Scan() {
		err := s.scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("could not read answer to %q: %w", strings.TrimSpace(label), err)
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *Session) load(path string) (pixbuf.Image, error) {
	load := s.env.Load
	if load == nil {
		load = pixbuf.Load
	}

	img, err := load(path)
	switch {
	case errors.Is(err, pixbuf.ErrNotFound):
		s.printf("File '%s' not found.\n", path)
	case err != nil:
		s.printf("Error occurred while loading the image: %v\n", err)
	default:
		s.logger.Info("loaded", "file", path, "width", img.Width, "height", img.Height,
			"channels", img.Channels)
	}
	return img, err
}

func (s *Session) printMenu(title string, entries []dispatch.Entry) {
	if title != "" {
		s.printf("%s\n", title)
	}
	for _, e := range entries {
		s.printf("%d. %s\n", e.Selector, e.Title)
	}
}

// Run goes through one full selection. An empty path is asked for. An
// unknown menu choice is reported and ends the run without error.
func (s *Session) Run(path string) error {
	var err error
	if path == "" {
		if path, err = s.prompt("Enter the image file name: "); err != nil {
			return err
		}
	}

	img, err := s.load(path)
	if err != nil {
		return err
	}

	s.printMenu("Select the image processing function:", dispatch.Menu)
	entry, err := s.choose(dispatch.Lookup, "Invalid choice. Please choose a valid option.")
	if err != nil || entry == nil {
		return err
	}

	if entry.Grouped() {
		s.printMenu("", entry.Subs)
		entry, err = s.choose(entry.Sub, fmt.Sprintf("Invalid choice. Please choose %s.", dispatch.Choices(entry.Subs)))
		if err != nil || entry == nil {
			return err
		}
	}

	params, err := s.readParams(*entry)
	if err != nil {
		if errors.Is(err, dispatch.ErrInvalidArgument) {
			s.printf("%v\n", err)
		}
		return err
	}

	cmds, err := dispatch.CommandsFor(entry.Op, params, s.env.All)
	if err != nil {
		s.printf("%v\n", err)
		return err
	}

	return s.execute(path, img, cmds)
}

// choose reads a selector and resolves it. A nil entry with a nil error
// means the choice was invalid and has been reported.
func (s *Session) choose(lookup func(int) (dispatch.Entry, error), invalid string) (*dispatch.Entry, error) {
	answer, err := s.prompt("Enter your choice: ")
	if err != nil {
		return nil, err
	}
	sel, err := dispatch.ParseSelector(answer)
	if err != nil {
		return nil, err
	}

	entry, err := lookup(sel)
	if err != nil {
		s.logger.Debug("invalid menu choice", "choice", sel, "error", err)
		s.printf("%s\n", invalid)
		return nil, nil
	}
	return &entry, nil
}

func (s *Session) readParams(entry dispatch.Entry) (dispatch.Params, error) {
	var p dispatch.Params
	var answer string
	var err error

	switch entry.Params {
	case dispatch.FactorParam:
		if answer, err = s.prompt(fmt.Sprintf("Enter the %s factor: ", entry.Op)); err != nil {
			return p, err
		}
		p.Factor, err = dispatch.ParseFactor(answer)
	case dispatch.DirectionParam:
		if answer, err = s.prompt("Enter the flip direction ('horizontal' or 'vertical'): "); err != nil {
			return p, err
		}
		p.Direction = answer
		if p.Direction == "" {
			err = fmt.Errorf("%w: empty flip direction, should be horizontal or vertical", dispatch.ErrInvalidArgument)
		}
	case dispatch.SizeParam:
		if answer, err = s.prompt("Enter the width for cropping: "); err != nil {
			return p, err
		}
		if p.Width, err = dispatch.ParseDimension("width", answer); err != nil {
			return p, err
		}
		if answer, err = s.prompt("Enter the height for cropping: "); err != nil {
			return p, err
		}
		p.Height, err = dispatch.ParseDimension("height", answer)
	}
	return p, err
}

// execute runs cmds, tells the user about every output and previews the
// last produced image.
func (s *Session) execute(path string, img pixbuf.Image, cmds []dispatch.Command) error {
	report := s.env.Dispatcher.Run(path, img, cmds...)
	for _, res := range report.Results {
		if res.Err != nil {
			s.printf("Error occurred while processing the image: %v\n", res.Err)
			continue
		}
		s.printf("Processed image saved as '%s'\n", res.Path)
	}

	if last, ok := report.Last(); ok && s.env.Previewer != nil {
		if err := s.env.Previewer.Preview(last); err != nil {
			s.logger.Warn("could not preview image", "error", err)
		}
	}

	return report.Err()
}
