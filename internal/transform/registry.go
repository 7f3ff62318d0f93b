package transform

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dshills/richsheet/internal/delta"
)

// Registry resolves attribute sets to styles using an ordered list of specs.
// A Registry is immutable after construction and safe for concurrent use
// as long as its transforms are.
type Registry struct {
	specs  []Spec
	byAttr map[string][]int
}

// NewRegistry creates a registry from specs. Specs with an empty attribute
// name or a nil transform are skipped.
func NewRegistry(specs ...Spec) *Registry {
	r := &Registry{byAttr: make(map[string][]int)}
	for _, s := range specs {
		if s.AttributeName == "" || s.Transform == nil {
			continue
		}
		r.byAttr[s.AttributeName] = append(r.byAttr[s.AttributeName], len(r.specs))
		r.specs = append(r.specs, s)
	}
	return r
}

// Specs returns the registered specs in order.
func (r *Registry) Specs() []Spec {
	specs := make([]Spec, len(r.specs))
	copy(specs, r.specs)
	return specs
}

// Len returns the number of specs.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Handles reports whether any spec targets the attribute.
func (r *Registry) Handles(attribute string) bool {
	return len(r.byAttr[attribute]) > 0
}

// StyleFor merges, in spec order, the styles produced for every attribute
// in attrs. Cleared values are skipped. A failing transform contributes
// nothing; all failures are returned combined alongside the partial style.
func (r *Registry) StyleFor(attrs delta.Attributes) (Style, error) {
	var (
		style Style
		errs  error
	)
	if len(attrs) == 0 {
		return style, nil
	}
	for _, s := range r.specs {
		v, ok := attrs[s.AttributeName]
		if !ok || v.IsClear() {
			continue
		}
		st, err := s.Transform.Apply(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("attribute %q: %w", s.AttributeName, err))
			continue
		}
		style = style.Merge(st)
	}
	return style, errs
}

// Close releases resources held by transforms that need it, such as
// scripts.
func (r *Registry) Close() error {
	var errs error
	for _, s := range r.specs {
		if c, ok := s.Transform.(interface{ Close() error }); ok {
			errs = multierr.Append(errs, c.Close())
		}
	}
	return errs
}
