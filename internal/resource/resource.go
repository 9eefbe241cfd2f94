// Package resource loads icon images for the boutique from the game's
// exported UI textures.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // PNG decoder registration
	"io/fs"
	"os"
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// ErrNotFound is returned when no icon file exists for an id.
var ErrNotFound = errors.New("icon not found")

// ErrReleased is returned when releasing an icon twice.
var ErrReleased = errors.New("icon already released")

// Handle is a loaded icon resource. The owner must call Release exactly once.
type Handle interface {
	Image() image.Image
	Release() error
}

// Provider resolves icon ids to loaded resources.
type Provider interface {
	Lookup(iconID uint32) (Handle, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(iconID uint32) (Handle, error)

// Lookup calls f(iconID).
func (f ProviderFunc) Lookup(iconID uint32) (Handle, error) {
	return f(iconID)
}

// Icon is a decoded icon held in memory.
type Icon struct {
	id   uint32
	path string
	img  *image.RGBA
}

// NewIcon wraps a decoded image as an icon handle.
func NewIcon(id uint32, name string, img image.Image) *Icon {
	return &Icon{id: id, path: name, img: toRGBA(img)}
}

// ID returns the icon id.
func (i *Icon) ID() uint32 { return i.id }

// Path returns the file the icon was read from.
func (i *Icon) Path() string { return i.path }

// Image returns the pixels, or nil once released.
func (i *Icon) Image() image.Image {
	if i.img == nil {
		return nil
	}
	return i.img
}

// Bounds returns the icon size; empty once released.
func (i *Icon) Bounds() image.Rectangle {
	if i.img == nil {
		return image.Rectangle{}
	}
	return i.img.Bounds()
}

// Release drops the pixel buffer.
func (i *Icon) Release() error {
	if i.img == nil {
		return ErrReleased
	}
	i.img = nil
	return nil
}

// Extensions are tried in order when looking up an icon file.
var Extensions = []string{".png", ".bmp", ".tga"}

// IconPath returns the file path of an icon inside the icon tree. Icons are
// grouped by thousand: icon 21045 lives at 021000/021045<ext>.
func IconPath(iconID uint32, ext string) string {
	group := iconID / 1000 * 1000
	return path.Join(fmt.Sprintf("%06d", group), fmt.Sprintf("%06d%s", iconID, ext))
}

// Dir serves icons from a directory tree laid out by IconPath.
type Dir struct {
	fsys fs.FS
}

// NewDir serves icons from fsys.
func NewDir(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// OpenDir serves icons from a directory on disk.
func OpenDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening icon root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("icon root %s is not a directory", root)
	}
	return NewDir(os.DirFS(root)), nil
}

// Lookup reads and decodes the icon file for iconID.
func (d *Dir) Lookup(iconID uint32) (Handle, error) {
	for _, ext := range Extensions {
		name := IconPath(iconID, ext)
		data, err := fs.ReadFile(d.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		img, err := Decode(data, ext)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return NewIcon(iconID, name, img), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, iconID)
}

// Decode decodes icon file contents. TGA is selected by extension; other
// formats are detected from the data.
func Decode(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func toRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
