package session

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"convimg/dispatch"
	"convimg/pixbuf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPreviewer struct {
	images []pixbuf.Image
}

func (r *recordingPreviewer) Preview(img pixbuf.Image) error {
	r.images = append(r.images, img)
	return nil
}

type fixture struct {
	dir   string
	input string
	out   *bytes.Buffer
	pv    *recordingPreviewer
}

func newFixture(t *testing.T, h, w int) *fixture {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")

	img := pixbuf.New(h, w, 3)
	for i := 0; i < len(img.Pix); i += 3 {
		copy(img.Pix[i:], []uint8{255, 0, 0})
	}
	require.NoError(t, pixbuf.Save(img, input))

	return &fixture{dir: dir, input: input, out: &bytes.Buffer{}, pv: &recordingPreviewer{}}
}

func (f *fixture) env(answers ...string) *Env {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Env{
		In:         strings.NewReader(strings.Join(answers, "\n") + "\n"),
		Out:        f.out,
		Dispatcher: dispatch.New(quiet),
		Previewer:  f.pv,
		All:        dispatch.DefaultAllParams(),
		Logger:     quiet,
	}
}

func (f *fixture) outputs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if e.Name() != "photo.png" {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRunBrightness(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, New(f.env(f.input, "1", "0.5")).Run(""))

	assert.Equal(t, []string{"photo_brightness.png"}, f.outputs(t))
	assert.Contains(t, f.out.String(), "Enter the image file name: ")
	assert.Contains(t, f.out.String(), "1. Adjust Brightness")
	assert.Contains(t, f.out.String(), "Enter the brightness factor: ")
	assert.Contains(t, f.out.String(), "Processed image saved as '"+filepath.Join(f.dir, "photo_brightness.png")+"'")

	got, err := pixbuf.Load(filepath.Join(f.dir, "photo_brightness.png"))
	require.NoError(t, err)
	assert.Equal(t, []uint8{127, 0, 0}, got.Pix[:3])

	require.Len(t, f.pv.images, 1)
	assert.Equal(t, got, f.pv.images[0])
}

func TestRunSepiaSubMenu(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, New(f.env("4", "2")).Run(f.input))

	assert.Equal(t, []string{"photo_sepia.png"}, f.outputs(t))
	assert.Contains(t, f.out.String(), "2. Convert to Sepia")

	got, err := pixbuf.Load(filepath.Join(f.dir, "photo_sepia.png"))
	require.NoError(t, err)
	for i := 0; i < len(got.Pix); i += 3 {
		assert.Equal(t, []uint8{140, 120, 80}, got.Pix[i:i+3])
	}
}

func TestRunFlip(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, New(f.env("3", "vertical")).Run(f.input))
	assert.Equal(t, []string{"photo_flip_vertical.png"}, f.outputs(t))
}

func TestRunFlipInvalidDirection(t *testing.T) {
	f := newFixture(t, 4, 4)
	err := New(f.env("3", "diagonal")).Run(f.input)
	require.ErrorIs(t, err, dispatch.ErrInvalidArgument)

	assert.Empty(t, f.outputs(t))
	assert.Empty(t, f.pv.images)
	assert.Contains(t, f.out.String(), "horizontal or vertical")
}

func TestRunCrop(t *testing.T) {
	f := newFixture(t, 10, 12)
	require.NoError(t, New(f.env("6", "4", "3")).Run(f.input))

	got, err := pixbuf.Load(filepath.Join(f.dir, "photo_cropped.png"))
	require.NoError(t, err)
	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 3, got.Height)
}

func TestRunCropTooLarge(t *testing.T) {
	f := newFixture(t, 10, 12)
	err := New(f.env("6", "40", "3")).Run(f.input)
	require.ErrorIs(t, err, dispatch.ErrInvalidArgument)
	assert.Empty(t, f.outputs(t))
	assert.Contains(t, f.out.String(), "Error occurred while processing the image")
}

func TestRunAll(t *testing.T) {
	f := newFixture(t, 64, 64)
	err := New(f.env("0")).Run(f.input)

	// the default 200x200 crop does not fit, everything else is written
	require.ErrorIs(t, err, dispatch.ErrInvalidArgument)
	assert.ElementsMatch(t, []string{
		"photo_brightness.png", "photo_contrast.png", "photo_flip_horizontal.png",
		"photo_flip_vertical.png", "photo_grayscale.png", "photo_sepia.png",
		"photo_blur.png", "photo_sharp.png", "photo_circle_cropped.png",
	}, f.outputs(t))

	require.Len(t, f.pv.images, 1)
	assert.Equal(t, 4, f.pv.images[0].Channels)
}

func TestRunAllFitting(t *testing.T) {
	f := newFixture(t, 20, 30)
	env := f.env("0")
	env.All.CropWidth, env.All.CropHeight = 10, 10
	require.NoError(t, New(env).Run(f.input))
	assert.Len(t, f.outputs(t), 10)
}

func TestRunInvalidChoice(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, New(f.env("9")).Run(f.input))
	assert.Empty(t, f.outputs(t))
	assert.Empty(t, f.pv.images)
	assert.Contains(t, f.out.String(), "Invalid choice. Please choose a valid option.")
}

func TestRunInvalidSubChoice(t *testing.T) {
	f := newFixture(t, 4, 4)
	require.NoError(t, New(f.env("5", "3")).Run(f.input))
	assert.Empty(t, f.outputs(t))
	assert.Contains(t, f.out.String(), "Invalid choice. Please choose 1 or 2.")
}

func TestRunParseError(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"choice", []string{"one"}},
		{"factor", []string{"2", "lots"}},
		{"width", []string{"6", "wide", "3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 4, 4)
			err := New(f.env(tc.answers...)).Run(f.input)
			require.ErrorIs(t, err, dispatch.ErrParse)
			assert.Empty(t, f.outputs(t))
		})
	}
}

func TestRunNotFound(t *testing.T) {
	f := newFixture(t, 4, 4)
	missing := filepath.Join(f.dir, "missing.png")

	err := New(f.env(missing, "1", "2")).Run("")
	require.ErrorIs(t, err, pixbuf.ErrNotFound)
	assert.Contains(t, f.out.String(), "File '"+missing+"' not found.")
	assert.NotContains(t, f.out.String(), "Select the image processing function")
	assert.Empty(t, f.outputs(t))
}

func TestRunEndOfInput(t *testing.T) {
	f := newFixture(t, 4, 4)
	env := f.env()
	env.In = strings.NewReader("")

	err := New(env).Run(f.input)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Empty(t, f.outputs(t))
}
