package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dshills/richsheet/internal/delta"
)

// Source is a displayable image reference.
type Source struct {
	// URI locates the image; local files use the file scheme.
	URI string

	// Width and Height are the intrinsic size hints, 0 when unknown.
	Width  int
	Height int
}

// ImageLocator resolves an image description to a displayable source.
type ImageLocator interface {
	Locate(img delta.Image) (Source, error)
}

// LocatorFunc adapts a function to an ImageLocator.
type LocatorFunc func(img delta.Image) (Source, error)

// Locate calls f(img).
func (f LocatorFunc) Locate(img delta.Image) (Source, error) {
	return f(img)
}

// DefaultLocator passes the image source through unchanged.
var DefaultLocator ImageLocator = LocatorFunc(func(img delta.Image) (Source, error) {
	if img.Source == "" {
		return Source{}, ErrNoSource
	}
	return Source{URI: img.Source, Width: img.Width, Height: img.Height}, nil
})

// FileLocator resolves relative image sources against a directory and
// checks that they exist. Sources that carry a URI scheme are passed
// through.
type FileLocator struct {
	fsys fs.FS
	root string
}

// NewFileLocator creates a locator rooted at dir.
func NewFileLocator(dir string) *FileLocator {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &FileLocator{fsys: os.DirFS(abs), root: abs}
}

// NewFSLocator creates a locator over fsys; root prefixes the returned URIs.
func NewFSLocator(fsys fs.FS, root string) *FileLocator {
	return &FileLocator{fsys: fsys, root: root}
}

// Locate implements ImageLocator.
func (l *FileLocator) Locate(img delta.Image) (Source, error) {
	if img.Source == "" {
		return Source{}, ErrNoSource
	}
	if u, err := url.Parse(img.Source); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return Source{URI: img.Source, Width: img.Width, Height: img.Height}, nil
	}

	name := path.Clean(strings.TrimPrefix(filepath.ToSlash(img.Source), "/"))
	if !fs.ValidPath(name) {
		return Source{}, fmt.Errorf("%w: %s", ErrImageNotFound, img.Source)
	}
	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Source{}, fmt.Errorf("%w: %s", ErrImageNotFound, img.Source)
		}
		return Source{}, fmt.Errorf("locating %s: %w", img.Source, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s is a directory", ErrImageNotFound, img.Source)
	}

	uri := url.URL{Scheme: "file", Path: path.Join(filepath.ToSlash(l.root), name)}
	return Source{URI: uri.String(), Width: img.Width, Height: img.Height}, nil
}
