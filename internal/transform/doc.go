// Package transform maps text attributes to presentational styles.
//
// A Registry is built from an ordered list of Specs. Each Spec binds an
// attribute name to a Transform that turns the attribute's value into a
// Style. Rendering a run of text merges the styles of every spec whose
// attribute is present on the run, in spec order:
//
//	reg := transform.NewRegistry(transform.DefaultSpecs()...)
//	style, err := reg.StyleFor(delta.Attributes{"bold": delta.Bool(true)})
//
// Three Transform implementations are provided. Match applies a fixed style
// when the value equals a given value. ColorValue interprets the value as a
// hex color. Script runs a sandboxed Lua function, letting configuration
// files describe transforms that neither of the others can express.
package transform
