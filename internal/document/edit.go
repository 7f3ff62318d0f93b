package document

import "github.com/dshills/richsheet/internal/delta"

// Insert returns a document with content inserted at offset.
// Text content containing newlines is split into lines.
func (d Document) Insert(offset int, content delta.Content, attrs delta.Attributes) (Document, error) {
	if err := d.checkRange("insert", offset, offset); err != nil {
		return d, err
	}
	if content == nil || content.Len() == 0 {
		return d, &EditError{Op: "insert", Start: offset, End: offset, Err: ErrNoContent}
	}
	op := delta.Op{Content: content, Attributes: attrs}
	return d.edit(offset, offset, func([]delta.Op) []delta.Op {
		return []delta.Op{op}
	}), nil
}

// Delete returns a document without the characters in [start, end).
func (d Document) Delete(start, end int) (Document, error) {
	if err := d.checkRange("delete", start, end); err != nil {
		return d, err
	}
	if start == end {
		return d, nil
	}
	return d.edit(start, end, func([]delta.Op) []delta.Op {
		return nil
	}), nil
}

// Replace returns a document where the selected characters are replaced by
// content. A collapsed selection inserts.
func (d Document) Replace(sel Selection, content delta.Content, attrs delta.Attributes) (Document, error) {
	if err := d.checkRange("replace", sel.Start, sel.End); err != nil {
		return d, err
	}
	if content == nil || content.Len() == 0 {
		return d, &EditError{Op: "replace", Start: sel.Start, End: sel.End, Err: ErrNoContent}
	}
	op := delta.Op{Content: content, Attributes: attrs}
	return d.edit(sel.Start, sel.End, func([]delta.Op) []delta.Op {
		return []delta.Op{op}
	}), nil
}

// Format merges attrs over every non-newline operation in [start, end).
// Clear values remove attributes. The line type key is ignored; use
// FormatLines to change line types.
func (d Document) Format(start, end int, attrs delta.Attributes) (Document, error) {
	if err := d.checkRange("format", start, end); err != nil {
		return d, err
	}
	attrs = attrs.WithoutLineType()
	if start == end || len(attrs) == 0 {
		return d, nil
	}
	return d.edit(start, end, func(region []delta.Op) []delta.Op {
		for i, op := range region {
			if op.IsNewline() {
				continue
			}
			region[i] = op.WithAttributes(delta.Merge(op.Attributes, attrs))
		}
		return region
	}), nil
}

// FormatLines sets the line type of every line intersecting [start, end).
// A collapsed range formats the line containing it. LineTypeNormal removes
// the line type attribute. An unterminated final line is closed with a
// newline carrying any other line type.
func (d Document) FormatLines(start, end int, lineType delta.LineType) (Document, error) {
	if err := d.checkRange("format lines", start, end); err != nil {
		return d, err
	}
	if d.IsEmpty() {
		return d, nil
	}

	var override delta.Attributes
	normal := lineType == "" || lineType == delta.LineTypeNormal
	if normal {
		override = delta.Attributes{delta.AttrLineType: delta.Clear()}
	} else {
		override = delta.Attributes{delta.AttrLineType: delta.String(string(lineType))}
	}

	first := d.LineAt(start)
	lastOffset := end
	if end > start {
		lastOffset = end - 1
	}
	last := d.LineAt(lastOffset)

	return d.edit(first.Start, last.End, func(region []delta.Op) []delta.Op {
		for i, op := range region {
			if op.IsNewline() {
				region[i] = op.WithAttributes(delta.Merge(op.Attributes, override))
			}
		}
		if !last.Terminated && !normal {
			region = append(region, delta.InsertNewline(delta.Merge(nil, override)))
		}
		return region
	}), nil
}
