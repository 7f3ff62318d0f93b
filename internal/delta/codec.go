package delta

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Marshal encodes the delta in its canonical JSON form.
func Marshal(d Delta) ([]byte, error) {
	buf := []byte(`{"ops":[]}`)
	for i, op := range d.ops {
		raw, err := marshalOp(op)
		if err != nil {
			return nil, fmt.Errorf("encoding op %d: %w", i, err)
		}
		buf, err = sjson.SetRawBytes(buf, "ops.-1", raw)
		if err != nil {
			return nil, fmt.Errorf("appending op %d: %w", i, err)
		}
	}
	return buf, nil
}

func marshalOp(op Op) ([]byte, error) {
	obj := []byte(`{}`)
	var err error
	switch c := op.Content.(type) {
	case TextContent:
		obj, err = sjson.SetBytes(obj, "insert", c.Text)
	case ImageContent:
		obj, err = sjson.SetBytes(obj, "insert", map[string]any{
			"image": map[string]any{
				"source": c.Image.Source,
				"width":  c.Image.Width,
				"height": c.Image.Height,
			},
		})
	default:
		return nil, ErrUnsupportedInsert
	}
	if err != nil {
		return nil, err
	}
	if len(op.Attributes) == 0 {
		return obj, nil
	}
	attrs := make(map[string]any, len(op.Attributes))
	for k, v := range op.Attributes {
		attrs[k] = v.Interface()
	}
	return sjson.SetBytes(obj, "attributes", attrs)
}

// Unmarshal decodes a delta from its canonical JSON form. The result is
// normalized as by New.
func Unmarshal(data []byte) (Delta, error) {
	if !gjson.ValidBytes(data) {
		return Delta{}, ErrInvalidJSON
	}
	ops := gjson.GetBytes(data, "ops")
	if !ops.IsArray() {
		return Delta{}, ErrMissingOps
	}

	var (
		b      Builder
		decErr error
		index  int
	)
	ops.ForEach(func(_, value gjson.Result) bool {
		op, err := unmarshalOp(value)
		if err != nil {
			decErr = &DecodeError{Index: index, Err: err}
			return false
		}
		b.Push(op)
		index++
		return true
	})
	if decErr != nil {
		return Delta{}, decErr
	}
	return b.Build(), nil
}

func unmarshalOp(value gjson.Result) (Op, error) {
	attrs, err := unmarshalAttributes(value.Get("attributes"))
	if err != nil {
		return Op{}, err
	}

	insert := value.Get("insert")
	switch {
	case insert.Type == gjson.String:
		if insert.Str == "" {
			return Op{}, ErrEmptyText
		}
		return InsertText(insert.Str, attrs), nil
	case insert.IsObject() && insert.Get("image").IsObject():
		img := insert.Get("image")
		return InsertImage(Image{
			Source: img.Get("source").String(),
			Width:  int(img.Get("width").Int()),
			Height: int(img.Get("height").Int()),
		}, attrs), nil
	default:
		return Op{}, fmt.Errorf("%w: %s", ErrUnsupportedInsert, insert.Raw)
	}
}

func unmarshalAttributes(value gjson.Result) (Attributes, error) {
	if !value.Exists() || value.Type == gjson.Null {
		return nil, nil
	}
	if !value.IsObject() {
		return nil, fmt.Errorf("%w: attributes must be an object", ErrUnsupportedValue)
	}
	var (
		attrs Attributes
		err   error
	)
	value.ForEach(func(key, v gjson.Result) bool {
		var val Value
		switch v.Type {
		case gjson.Null:
			return true
		case gjson.True, gjson.False:
			val = Bool(v.Bool())
		case gjson.Number:
			val = Number(v.Num)
		case gjson.String:
			val = String(v.Str)
		default:
			err = fmt.Errorf("%w: %s=%s", ErrUnsupportedValue, key.Str, v.Raw)
			return false
		}
		if attrs == nil {
			attrs = make(Attributes)
		}
		attrs[key.Str] = val
		return true
	})
	return attrs, err
}
