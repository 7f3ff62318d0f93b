package gen

import (
	"github.com/dshills/richsheet/internal/transform"
)

// Config configures content generation. Nil fields mean "use the default".
type Config struct {
	// ImageLocatorService resolves image descriptions.
	ImageLocatorService ImageLocator

	// TextTransformSpecs describe how attribute values map to styles.
	// A non-nil empty slice disables all transforms.
	TextTransformSpecs []transform.Spec
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ImageLocatorService: DefaultLocator,
		TextTransformSpecs:  transform.DefaultSpecs(),
	}
}

// MergeConfig returns base with every field set in override replaced.
func MergeConfig(base, override Config) Config {
	if override.ImageLocatorService != nil {
		base.ImageLocatorService = override.ImageLocatorService
	}
	if override.TextTransformSpecs != nil {
		base.TextTransformSpecs = override.TextTransformSpecs
	}
	return base
}

// Service is the capability bundle threaded to renderers.
type Service struct {
	ImageLocator   ImageLocator
	TextTransforms *transform.Registry
}

// NewService merges partial over DefaultConfig and builds the service.
func NewService(partial Config) *Service {
	cfg := MergeConfig(DefaultConfig(), partial)
	return &Service{
		ImageLocator:   cfg.ImageLocatorService,
		TextTransforms: transform.NewRegistry(cfg.TextTransformSpecs...),
	}
}

// Close releases resources held by the text transforms.
func (s *Service) Close() error {
	return s.TextTransforms.Close()
}
