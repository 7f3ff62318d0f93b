package bridge

import (
	"github.com/dshills/richsheet/internal/delta"
)

// Event names a bridge event.
type Event string

// Control events flow from external controls to the editing surface.
const (
	EventApplyAttributesToSelection Event = "APPLY_ATTRIBUTES_TO_SELECTION"
	EventApplyLineTypeToSelection   Event = "APPLY_LINE_TYPE_TO_SELECTION"
	EventInsertOrReplaceAtSelection Event = "INSERT_OR_REPLACE_AT_SELECTION"
)

// Sheet events flow from the editing surface to external controls.
const (
	EventSelectedAttributesChange Event = "SELECTED_ATTRIBUTES_CHANGE"
	EventSelectedLineTypeChange   Event = "SELECTED_LINE_TYPE_CHANGE"
)

// Element is content to insert at the selection: a TextElement or an
// ImageElement.
type Element interface {
	isElement()
}

// TextElement inserts text.
type TextElement struct {
	Content string
}

// ImageElement inserts an image.
type ImageElement struct {
	Description delta.Image
}

func (TextElement) isElement()  {}
func (ImageElement) isElement() {}

// Listener types.
type (
	// AttributesOverrideListener receives an attribute to apply to the
	// selection. A clear value removes the attribute.
	AttributesOverrideListener func(name string, value delta.Value)

	// LineTypeOverrideListener receives a line type to apply to the lines
	// touched by the selection.
	LineTypeOverrideListener func(lineType delta.LineType)

	// InsertOrReplaceAtSelectionListener receives an element to insert at
	// the caret or to replace the selection with.
	InsertOrReplaceAtSelectionListener func(element Element)

	// SelectedAttributesChangeListener receives the attributes active over
	// the new selection.
	SelectedAttributesChangeListener func(attrs delta.Attributes)

	// SelectedLineTypeChangeListener receives the line type of the new
	// selection.
	SelectedLineTypeChangeListener func(lineType delta.LineType)
)
