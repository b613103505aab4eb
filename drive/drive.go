// Package drive loads and caches bitmaps from layered file systems.
package drive

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

var ErrEmptyKey = errors.New("drive: empty key")

// Drive reads assets from a list of file systems, first match wins, and
// caches decoded bitmaps by key.
type Drive struct {
	layers []fs.FS
	images map[string]*ebiten.Image
	logger *log.Logger
}

// New creates a drive searching layers in order. Put a directory first to
// override embedded assets during development.
func New(logger *log.Logger, layers ...fs.FS) *Drive {
	if logger == nil {
		logger = log.Default()
	}
	return &Drive{
		layers: layers,
		images: make(map[string]*ebiten.Image),
		logger: logger.WithPrefix("drive"),
	}
}

// ReadFile returns the content of name from the first layer that has it.
func (d *Drive) ReadFile(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyKey
	}
	clean := CleanPath(name)
	var firstErr error
	for _, layer := range d.layers {
		b, err := fs.ReadFile(layer, clean)
		if err == nil {
			return b, nil
		}
		if firstErr == nil || !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fs.ErrNotExist
	}
	return nil, fmt.Errorf("drive: read %s: %w", clean, firstErr)
}

// LoadImage decodes name without uploading it to the GPU.
func (d *Drive) LoadImage(name string) (image.Image, error) {
	b, err := d.ReadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("drive: decode %s: %w", name, err)
	}
	return img, nil
}

// LoadBitmap returns the cached bitmap for name, loading it on first use.
func (d *Drive) LoadBitmap(name string) (*ebiten.Image, error) {
	if name == "" {
		return nil, ErrEmptyKey
	}
	if img := d.Bitmap(name); img != nil {
		return img, nil
	}
	src, err := d.LoadImage(name)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	d.RegisterBitmap(name, img)
	d.logger.Debug("bitmap loaded", "name", name, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// RegisterBitmap stores img under key. Empty keys and nil images are ignored.
func (d *Drive) RegisterBitmap(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	d.images[CleanPath(key)] = img
}

// Bitmap returns a cached bitmap, or nil.
func (d *Drive) Bitmap(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return d.images[CleanPath(key)]
}

// Forget drops a cached bitmap so the next LoadBitmap reads it again.
func (d *Drive) Forget(key string) {
	delete(d.images, CleanPath(key))
}

// CleanPath turns an OS or assets-prefixed path into an fs.FS path.
func CleanPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if filepath.IsAbs(name) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	s = path.Clean(s)
	return strings.TrimPrefix(s, "assets/")
}
