package config

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/gen"
	"github.com/dshills/richsheet/internal/transform"
)

// File is the decoded content of a configuration file.
type File struct {
	// LogLevel is the minimum log level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Images ImagesSection `toml:"images" yaml:"images"`
	Render RenderSection `toml:"render" yaml:"render"`

	// DefaultTransforms keeps the built-in transforms ahead of Transforms.
	// Unset means true.
	DefaultTransforms *bool `toml:"default_transforms" yaml:"default_transforms"`

	Transforms []TransformEntry `toml:"transforms" yaml:"transforms"`

	// dir is the directory of the file, used to resolve relative paths.
	dir string
}

// ImagesSection configures image location.
type ImagesSection struct {
	// BaseDir is the directory relative image sources are resolved
	// against. Relative to the configuration file.
	BaseDir string `toml:"base_dir" yaml:"base_dir"`
}

// RenderSection configures the renderer. Nil fields keep the defaults.
type RenderSection struct {
	Spacing        *int `toml:"spacing" yaml:"spacing"`
	MaxMediaWidth  *int `toml:"max_media_width" yaml:"max_media_width"`
	MaxMediaHeight *int `toml:"max_media_height" yaml:"max_media_height"`
}

// TransformEntry declares one text transform. Exactly one form applies:
// a Script, a Color target, or a match on Value with the style fields.
type TransformEntry struct {
	Attribute string `toml:"attribute" yaml:"attribute"`

	// Value is matched against the attribute value. Unset matches true.
	Value any `toml:"value" yaml:"value"`

	Bold          bool   `toml:"bold" yaml:"bold"`
	Italic        bool   `toml:"italic" yaml:"italic"`
	Underline     bool   `toml:"underline" yaml:"underline"`
	Strikethrough bool   `toml:"strikethrough" yaml:"strikethrough"`
	Dim           bool   `toml:"dim" yaml:"dim"`
	Foreground    string `toml:"fg" yaml:"fg"`
	Background    string `toml:"bg" yaml:"bg"`
	Case          string `toml:"case" yaml:"case"`

	// Color makes the attribute value itself a color: "foreground" or
	// "background".
	Color string `toml:"color" yaml:"color"`

	// Script is Lua source defining a style function.
	Script string `toml:"script" yaml:"script"`
}

// Dir returns the directory the file was loaded from.
func (f *File) Dir() string {
	return f.dir
}

// Validate checks settings that do not need building.
func (f *File) Validate() error {
	for name, v := range map[string]*int{
		"render.spacing":          f.Render.Spacing,
		"render.max_media_width":  f.Render.MaxMediaWidth,
		"render.max_media_height": f.Render.MaxMediaHeight,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s = %d", ErrInvalidValue, name, *v)
		}
	}
	return nil
}

// GenConfig builds the partial generation configuration described by the
// file. Fields the file does not configure are left nil.
func (f *File) GenConfig() (gen.Config, error) {
	var cfg gen.Config

	if f.Images.BaseDir != "" {
		dir := f.Images.BaseDir
		if !filepath.IsAbs(dir) && f.dir != "" {
			dir = filepath.Join(f.dir, dir)
		}
		cfg.ImageLocatorService = gen.NewFileLocator(dir)
	}

	keepDefaults := f.DefaultTransforms == nil || *f.DefaultTransforms
	if len(f.Transforms) == 0 && keepDefaults {
		return cfg, nil
	}

	specs := []transform.Spec{}
	if keepDefaults {
		specs = append(specs, transform.DefaultSpecs()...)
	}
	for i, entry := range f.Transforms {
		spec, err := entry.spec()
		if err != nil {
			closeSpecs(specs)
			return gen.Config{}, &TransformError{Index: i, Attribute: entry.Attribute, Err: err}
		}
		specs = append(specs, spec)
	}
	cfg.TextTransformSpecs = specs
	return cfg, nil
}

func (e TransformEntry) spec() (transform.Spec, error) {
	if e.Attribute == "" {
		return transform.Spec{}, ErrMissingAttribute
	}
	if e.Script != "" && e.Color != "" {
		return transform.Spec{}, ErrAmbiguousTransform
	}

	var (
		t   transform.Transform
		err error
	)
	switch {
	case e.Script != "":
		t, err = transform.NewScript(e.Script)
	case e.Color != "":
		var target transform.ColorTarget
		target, err = transform.ParseColorTarget(e.Color)
		t = transform.ColorValue{Target: target}
	default:
		t, err = e.match()
	}
	if err != nil {
		return transform.Spec{}, err
	}
	return transform.Spec{AttributeName: e.Attribute, Transform: t}, nil
}

func (e TransformEntry) match() (transform.Match, error) {
	value := delta.Bool(true)
	if e.Value != nil {
		v, err := delta.ValueOf(e.Value)
		if err != nil {
			return transform.Match{}, err
		}
		value = v
	}

	style := transform.Style{
		Bold:          e.Bold,
		Italic:        e.Italic,
		Underline:     e.Underline,
		StrikeThrough: e.Strikethrough,
		Dim:           e.Dim,
	}
	var err error
	if e.Foreground != "" {
		if style.Foreground, err = transform.ParseColor(e.Foreground); err != nil {
			return transform.Match{}, err
		}
	}
	if e.Background != "" {
		if style.Background, err = transform.ParseColor(e.Background); err != nil {
			return transform.Match{}, err
		}
	}
	if style.Case, err = transform.ParseCase(e.Case); err != nil {
		return transform.Match{}, err
	}
	return transform.Match{Value: value, Style: style}, nil
}

func closeSpecs(specs []transform.Spec) {
	_ = transform.NewRegistry(specs...).Close()
}
