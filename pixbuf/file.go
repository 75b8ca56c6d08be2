package pixbuf

import (
	"errors"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotFound = errors.New("image not found")
	ErrDecode   = errors.New("could not decode image")
	ErrWrite    = errors.New("could not write image")
)

func Load(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Image{}, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		return Image{}, fmt.Errorf("%w: could not open %q: %w", ErrDecode, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w %q: %w", ErrDecode, path, err)
	}

	return FromImage(img), nil
}

// Save writes img as PNG. The data goes to a temporary file in the
// destination folder which is renamed over path once fully flushed.
func Save(img Image, path string) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name)
	if err != nil {
		return fmt.Errorf("%w: could not create temporary destination %q: %w", ErrWrite, name, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not flush temporary destination %q: %w", ErrWrite, name, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not close temporary destination %q: %w", ErrWrite, name, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("%w: could not rename destination file %q: %w", ErrWrite, path, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	// CreateTemp files are private, outputs should not be.
	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: could not set permissions on %q: %w", ErrWrite, name, err)
	}

	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	if err = enc.Encode(outFile, img.ToImage()); err != nil {
		return fmt.Errorf("%w: could not encode PNG destination %q: %w", ErrWrite, path, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
