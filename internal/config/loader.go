package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/richsheet/internal/logging"
)

// Loader reads configuration files from a file system.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l *logging.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithRoot sets the OS directory fsys corresponds to, used to resolve
// relative paths found in the files.
func WithRoot(dir string) LoaderOption {
	return func(ld *Loader) {
		ld.root = dir
	}
}

// NewLoader creates a loader reading from fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{fsys: fsys, logger: logging.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithComponent("config")
	return l
}

// Load reads and decodes the file at name, a slash-separated path in the
// loader's file system.
func (l *Loader) Load(name string) (*File, error) {
	decode, err := decoderFor(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", name, err)
	}

	f := &File{}
	if err := decode(data, f); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if err := f.Validate(); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if l.root != "" {
		f.dir = filepath.Join(l.root, filepath.FromSlash(path.Dir(name)))
	}

	l.logger.Info("loaded %s", name)
	l.logger.Debug("%d transforms, images.base_dir=%q", len(f.Transforms), f.Images.BaseDir)
	return f, nil
}

// LoadFile reads a configuration file from the OS file system.
func LoadFile(filename string, logger *logging.Logger) (*File, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	return NewLoader(os.DirFS(dir), WithRoot(dir), WithLogger(logger)).Load(filepath.Base(abs))
}

func decoderFor(name string) (func([]byte, *File) error, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".toml":
		return func(data []byte, f *File) error {
			dec := toml.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			return dec.Decode(f)
		}, nil
	case ".yaml", ".yml":
		return func(data []byte, f *File) error {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}
