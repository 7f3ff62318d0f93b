// Package toolbar implements an external formatting control.
//
// A Toolbar sits on the control side of a bridge.Bridge. It mirrors the
// attributes and line type of the sheet's selection as they are reported,
// and turns button presses into formatting and insertion requests.
package toolbar
