package sheet

import (
	"github.com/dshills/richsheet/internal/bridge"
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/document"
	"github.com/dshills/richsheet/internal/endpoint"
	"github.com/dshills/richsheet/internal/logging"
)

// ChangeFunc is called after every change to the document or selection.
type ChangeFunc func(doc document.Document, sel document.Selection)

// Sheet is an editing surface bound to one bridge.
// It is not safe for concurrent use.
type Sheet struct {
	bridge   *bridge.Bridge
	owner    endpoint.Owner
	doc      document.Document
	sel      document.Selection
	pending  delta.Attributes
	onChange ChangeFunc
	logger   *logging.Logger
	closed   bool
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(s *Sheet) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnChange registers fn to be called after every change.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Sheet) {
		s.onChange = fn
	}
}

// WithSelection sets the initial selection. It is clamped to the document.
func WithSelection(sel document.Selection) Option {
	return func(s *Sheet) {
		s.sel = sel
	}
}

// New creates a sheet editing doc and registers its listeners on b.
// It panics if b is nil.
func New(b *bridge.Bridge, doc document.Document, opts ...Option) *Sheet {
	if b == nil {
		panic("sheet: nil bridge")
	}
	s := &Sheet{
		bridge: b,
		owner:  endpoint.NewOwner(),
		doc:    doc,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("sheet")
	s.sel = s.clamp(s.sel)

	domain := b.SheetEventDomain()
	domain.AddApplyTextTransformToSelectionListener(s.owner, s.applyAttribute)
	domain.AddApplyLineTypeToSelectionListener(s.owner, s.applyLineType)
	domain.AddInsertOrReplaceAtSelectionListener(s.owner, s.insertOrReplace)
	return s
}

// Bridge returns the bridge the sheet is bound to.
func (s *Sheet) Bridge() *bridge.Bridge {
	return s.bridge
}

// Document returns the current document.
func (s *Sheet) Document() document.Document {
	return s.doc
}

// Selection returns the current selection.
func (s *Sheet) Selection() document.Selection {
	return s.sel
}

// Pending returns the attribute overrides waiting for the next insertion.
func (s *Sheet) Pending() delta.Attributes {
	return s.pending.Clone()
}

// Closed reports whether Close has been called.
func (s *Sheet) Closed() bool {
	return s.closed
}

// SelectedAttributes returns the attributes that apply to the selection,
// including pending overrides at a caret.
func (s *Sheet) SelectedAttributes() delta.Attributes {
	attrs := s.doc.AttributesInRange(s.sel)
	if s.sel.Collapsed() {
		attrs = delta.Merge(attrs, s.pending)
	}
	return attrs
}

// SelectedLineType returns the line type shared by the selected lines.
func (s *Sheet) SelectedLineType() delta.LineType {
	return s.doc.LineTypeInRange(s.sel)
}

// Select moves the selection. Pending overrides are discarded.
func (s *Sheet) Select(sel document.Selection) {
	if s.closed {
		return
	}
	s.sel = s.clamp(sel)
	s.pending = nil
	s.changed()
}

// SetDocument replaces the document, keeping the selection within bounds.
func (s *Sheet) SetDocument(doc document.Document) {
	if s.closed {
		return
	}
	s.doc = doc
	s.sel = s.clamp(s.sel)
	s.pending = nil
	s.changed()
}

// InsertText types text at the selection. The inserted text takes the
// attributes of the selection together with any pending overrides, and the
// caret moves after it.
func (s *Sheet) InsertText(text string) error {
	if s.closed || text == "" {
		return nil
	}
	return s.replace(delta.TextContent{Text: text}, s.SelectedAttributes())
}

// DeleteBackward removes the selected content, or the character before a
// collapsed caret.
func (s *Sheet) DeleteBackward() error {
	if s.closed {
		return nil
	}
	start, end := s.sel.Start, s.sel.End
	if s.sel.Collapsed() {
		if start == 0 {
			return nil
		}
		start--
	}
	doc, err := s.doc.Delete(start, end)
	if err != nil {
		return err
	}
	s.doc = doc
	s.sel = document.Caret(start)
	s.pending = nil
	s.changed()
	return nil
}

// Close releases the sheet's listeners. Later calls have no effect.
func (s *Sheet) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.bridge.SheetEventDomain().Release(s.owner)
	s.logger.Debug("closed")
}

func (s *Sheet) applyAttribute(name string, value delta.Value) {
	if s.closed || name == "" || name == delta.AttrLineType {
		return
	}
	override := delta.Attributes{name: value}
	if s.sel.Collapsed() {
		s.pending = delta.Compose(s.pending, override)
		s.logger.Debug("pending %s=%s", name, value)
		s.changed()
		return
	}
	doc, err := s.doc.Format(s.sel.Start, s.sel.End, override)
	if err != nil {
		s.logger.Warn("format %s: %v", name, err)
		return
	}
	s.doc = doc
	s.logger.Debug("format [%d, %d) %s=%s", s.sel.Start, s.sel.End, name, value)
	s.changed()
}

func (s *Sheet) applyLineType(lineType delta.LineType) {
	if s.closed {
		return
	}
	doc, err := s.doc.FormatLines(s.sel.Start, s.sel.End, lineType)
	if err != nil {
		s.logger.Warn("format lines %s: %v", lineType, err)
		return
	}
	s.doc = doc
	s.logger.Debug("line type [%d, %d) %s", s.sel.Start, s.sel.End, lineType)
	s.changed()
}

func (s *Sheet) insertOrReplace(element bridge.Element) {
	if s.closed {
		return
	}
	var err error
	switch el := element.(type) {
	case bridge.TextElement:
		if el.Content == "" {
			return
		}
		err = s.replace(delta.TextContent{Text: el.Content}, s.SelectedAttributes())
	case bridge.ImageElement:
		err = s.replace(delta.ImageContent{Image: el.Description}, nil)
	default:
		return
	}
	if err != nil {
		s.logger.Warn("insert: %v", err)
	}
}

func (s *Sheet) replace(content delta.Content, attrs delta.Attributes) error {
	doc, err := s.doc.Replace(s.sel, content, attrs.WithoutLineType())
	if err != nil {
		return err
	}
	s.doc = doc
	s.sel = document.Caret(s.sel.Start + content.Len())
	s.pending = nil
	s.changed()
	return nil
}

func (s *Sheet) changed() {
	domain := s.bridge.SheetEventDomain()
	domain.NotifySelectedAttributesChange(s.SelectedAttributes())
	domain.NotifySelectedLineTypeChange(s.SelectedLineType())
	if s.onChange != nil {
		s.onChange(s.doc, s.sel)
	}
}

func (s *Sheet) clamp(sel document.Selection) document.Selection {
	n := s.doc.Length()
	return document.NewSelection(min(max(sel.Start, 0), n), min(max(sel.End, 0), n))
}
