package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "RICHSHEET_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLoader overlays environment variables on a loaded file.
type EnvLoader struct {
	prefix string
	lookup LookupFunc
}

// NewEnvLoader creates a loader reading the process environment.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{prefix: EnvPrefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading variables through lookup.
func NewEnvLoaderWithLookup(prefix string, lookup LookupFunc) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// envSetting binds a variable suffix to a field of File.
type envSetting struct {
	name  string
	apply func(f *File, value string) error
}

func envSettings() []envSetting {
	return []envSetting{
		{"LOG_LEVEL", func(f *File, v string) error {
			f.LogLevel = v
			return nil
		}},
		{"IMAGES_BASE_DIR", func(f *File, v string) error {
			f.Images.BaseDir = v
			return nil
		}},
		{"RENDER_SPACING", intSetting(func(f *File) **int { return &f.Render.Spacing })},
		{"RENDER_MAX_MEDIA_WIDTH", intSetting(func(f *File) **int { return &f.Render.MaxMediaWidth })},
		{"RENDER_MAX_MEDIA_HEIGHT", intSetting(func(f *File) **int { return &f.Render.MaxMediaHeight })},
		{"DEFAULT_TRANSFORMS", func(f *File, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			f.DefaultTransforms = &b
			return nil
		}},
	}
}

// Apply overrides the fields of f set in the environment and validates the
// result. Empty values are treated as set.
func (l *EnvLoader) Apply(f *File) error {
	for _, s := range envSettings() {
		name := l.prefix + s.name
		val, ok := l.lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(f, strings.TrimSpace(val)); err != nil {
			return &ParseError{Path: "$" + name, Err: err}
		}
	}
	if err := f.Validate(); err != nil {
		return &ParseError{Path: "environment", Err: err}
	}
	return nil
}

func intSetting(field func(f *File) **int) func(f *File, v string) error {
	return func(f *File, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
		}
		*field(f) = &n
		return nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
}
