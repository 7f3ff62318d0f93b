package toolbar

import (
	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/endpoint"
	"github.com/dshills/richsheet/internal/logging"
)

// Toolbar tracks the selection state reported by a sheet and issues
// formatting requests on its behalf.
// It is not safe for concurrent use.
type Toolbar struct {
	bridge   *bridge.Bridge
	owner    endpoint.Owner
	items    []Item
	attrs    delta.Attributes
	lineType delta.LineType
	onUpdate func()
	logger   *logging.Logger
	closed   bool
}

// Option configures a Toolbar.
type Option func(*Toolbar)

// WithItems replaces the default buttons.
func WithItems(items []Item) Option {
	return func(t *Toolbar) {
		t.items = append([]Item(nil), items...)
	}
}

// WithOnUpdate registers fn to be called whenever the selection state changes.
func WithOnUpdate(fn func()) Option {
	return func(t *Toolbar) {
		t.onUpdate = fn
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(t *Toolbar) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a toolbar listening on b. It panics if b is nil.
func New(b *bridge.Bridge, opts ...Option) *Toolbar {
	if b == nil {
		panic("toolbar: nil bridge")
	}
	t := &Toolbar{
		bridge:   b,
		owner:    endpoint.NewOwner(),
		items:    DefaultItems(),
		lineType: delta.LineTypeNormal,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithComponent("toolbar")

	ctrl := b.ControlEventDomain()
	ctrl.AddSelectedAttributesChangeListener(t.owner, func(attrs delta.Attributes) {
		t.attrs = attrs
		t.updated()
	})
	ctrl.AddSelectedLineTypeChangeListener(t.owner, func(lineType delta.LineType) {
		t.lineType = lineType
		t.updated()
	})
	return t
}

// Items returns the toolbar's buttons.
func (t *Toolbar) Items() []Item {
	return append([]Item(nil), t.items...)
}

// ItemForKey returns the button bound to key.
func (t *Toolbar) ItemForKey(key rune) (Item, bool) {
	for _, item := range t.items {
		if item.Key == key {
			return item, true
		}
	}
	return Item{}, false
}

// Attributes returns the last reported selection attributes.
func (t *Toolbar) Attributes() delta.Attributes {
	return t.attrs.Clone()
}

// LineType returns the last reported selection line type.
func (t *Toolbar) LineType() delta.LineType {
	return t.lineType
}

// Active reports whether attribute name currently holds value.
func (t *Toolbar) Active(name string, value delta.Value) bool {
	v, ok := t.attrs.Get(name)
	return ok && v.Equal(value)
}

// ItemActive reports whether item is lit for the current selection.
func (t *Toolbar) ItemActive(item Item) bool {
	if item.IsLineType() {
		return t.lineType == item.LineType
	}
	return t.Active(item.Attribute, item.Value)
}

// Toggle sets attribute name to value over the selection, or clears it
// when it already holds value.
func (t *Toolbar) Toggle(name string, value delta.Value) {
	if t.closed {
		return
	}
	if t.Active(name, value) {
		value = delta.Clear()
	}
	t.logger.Debug("toggle %s=%s", name, value)
	t.bridge.ControlEventDomain().ApplyTextTransformToSelection(name, value)
}

// SetLineType sets the line type of the selected lines.
func (t *Toolbar) SetLineType(lineType delta.LineType) {
	if t.closed {
		return
	}
	t.logger.Debug("line type %s", lineType)
	t.bridge.ControlEventDomain().ApplyLineTypeToSelection(lineType)
}

// Press activates item. Line type buttons toggle back to normal when the
// selection already has their type.
func (t *Toolbar) Press(item Item) {
	if !item.IsLineType() {
		t.Toggle(item.Attribute, item.Value)
		return
	}
	lineType := item.LineType
	if t.lineType == lineType {
		lineType = delta.LineTypeNormal
	}
	t.SetLineType(lineType)
}

// Insert inserts element at the selection.
func (t *Toolbar) Insert(element bridge.Element) {
	if t.closed {
		return
	}
	t.bridge.ControlEventDomain().InsertOrReplaceAtSelection(element)
}

// Close releases the toolbar's listeners. Later calls have no effect.
func (t *Toolbar) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.bridge.ControlEventDomain().Release(t.owner)
}

func (t *Toolbar) updated() {
	if t.onUpdate != nil {
		t.onUpdate()
	}
}
