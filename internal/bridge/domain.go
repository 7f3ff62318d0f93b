package bridge

import (
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/endpoint"
)

// ControlEventDomain is the outer-facing capability handed to external
// controls.
type ControlEventDomain interface {
	// InsertOrReplaceAtSelection inserts element at the caret, or replaces
	// the selected content with it.
	InsertOrReplaceAtSelection(element Element)

	// ApplyTextTransformToSelection sets attribute name to value over the
	// selection. A clear value removes the attribute.
	ApplyTextTransformToSelection(name string, value delta.Value)

	// ApplyLineTypeToSelection sets the line type of every selected line.
	ApplyLineTypeToSelection(lineType delta.LineType)

	// AddSelectedAttributesChangeListener calls l whenever the surface
	// reports new selected attributes.
	AddSelectedAttributesChangeListener(owner endpoint.Owner, l SelectedAttributesChangeListener)

	// AddSelectedLineTypeChangeListener calls l whenever the surface reports
	// a new selected line type.
	AddSelectedLineTypeChangeListener(owner endpoint.Owner, l SelectedLineTypeChangeListener)

	// Release removes every listener registered by owner.
	Release(owner endpoint.Owner)
}

// SheetEventDomain is the inner-facing capability handed to the editing
// surface.
type SheetEventDomain interface {
	// AddApplyTextTransformToSelectionListener calls l when a control sets
	// an attribute over the selection.
	AddApplyTextTransformToSelectionListener(owner endpoint.Owner, l AttributesOverrideListener)

	// AddApplyLineTypeToSelectionListener calls l when a control sets the
	// line type of the selection.
	AddApplyLineTypeToSelectionListener(owner endpoint.Owner, l LineTypeOverrideListener)

	// AddInsertOrReplaceAtSelectionListener calls l when a control inserts
	// an element at the selection.
	AddInsertOrReplaceAtSelectionListener(owner endpoint.Owner, l InsertOrReplaceAtSelectionListener)

	// NotifySelectedAttributesChange reports the attributes active over the
	// current selection.
	NotifySelectedAttributesChange(attrs delta.Attributes)

	// NotifySelectedLineTypeChange reports the line type of the current
	// selection.
	NotifySelectedLineTypeChange(lineType delta.LineType)

	// Release removes every listener registered by owner.
	Release(owner endpoint.Owner)
}

type controlDomain struct {
	b *Bridge
}

func (d controlDomain) InsertOrReplaceAtSelection(element Element) {
	if element == nil {
		return
	}
	d.b.emit(EventInsertOrReplaceAtSelection, element)
}

func (d controlDomain) ApplyTextTransformToSelection(name string, value delta.Value) {
	d.b.emit(EventApplyAttributesToSelection, name, value)
}

func (d controlDomain) ApplyLineTypeToSelection(lineType delta.LineType) {
	d.b.emit(EventApplyLineTypeToSelection, lineType)
}

func (d controlDomain) AddSelectedAttributesChangeListener(owner endpoint.Owner, l SelectedAttributesChangeListener) {
	if l == nil {
		return
	}
	d.b.addListener(owner, EventSelectedAttributesChange, func(args ...any) {
		attrs, _ := arg[delta.Attributes](args, 0)
		l(attrs)
	})
}

func (d controlDomain) AddSelectedLineTypeChangeListener(owner endpoint.Owner, l SelectedLineTypeChangeListener) {
	if l == nil {
		return
	}
	d.b.addListener(owner, EventSelectedLineTypeChange, func(args ...any) {
		lt, _ := arg[delta.LineType](args, 0)
		l(lt)
	})
}

func (d controlDomain) Release(owner endpoint.Owner) {
	d.b.release(owner)
}

type sheetDomain struct {
	b *Bridge
}

func (d sheetDomain) AddApplyTextTransformToSelectionListener(owner endpoint.Owner, l AttributesOverrideListener) {
	if l == nil {
		return
	}
	d.b.addListener(owner, EventApplyAttributesToSelection, func(args ...any) {
		name, ok := arg[string](args, 0)
		if !ok {
			return
		}
		value, _ := arg[delta.Value](args, 1)
		l(name, value)
	})
}

func (d sheetDomain) AddApplyLineTypeToSelectionListener(owner endpoint.Owner, l LineTypeOverrideListener) {
	if l == nil {
		return
	}
	d.b.addListener(owner, EventApplyLineTypeToSelection, func(args ...any) {
		if lt, ok := arg[delta.LineType](args, 0); ok {
			l(lt)
		}
	})
}

func (d sheetDomain) AddInsertOrReplaceAtSelectionListener(owner endpoint.Owner, l InsertOrReplaceAtSelectionListener) {
	if l == nil {
		return
	}
	d.b.addListener(owner, EventInsertOrReplaceAtSelection, func(args ...any) {
		if el, ok := arg[Element](args, 0); ok {
			l(el)
		}
	})
}

func (d sheetDomain) NotifySelectedAttributesChange(attrs delta.Attributes) {
	d.b.emit(EventSelectedAttributesChange, attrs.Clone())
}

func (d sheetDomain) NotifySelectedLineTypeChange(lineType delta.LineType) {
	d.b.emit(EventSelectedLineTypeChange, lineType)
}

func (d sheetDomain) Release(owner endpoint.Owner) {
	d.b.release(owner)
}

// arg returns args[i] as a T.
func arg[T any](args []any, i int) (T, bool) {
	var zero T
	if i >= len(args) {
		return zero, false
	}
	v, ok := args[i].(T)
	return v, ok
}
