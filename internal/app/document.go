package app

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/richsheet/internal/block"
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/document"
)

// LoadDocument reads a delta JSON file.
func LoadDocument(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Empty(), &OperationError{Op: "load", Target: path, Err: err}
	}
	d, err := delta.Unmarshal(data)
	if err != nil {
		return document.Empty(), &OperationError{Op: "load", Target: path, Err: err}
	}
	return document.New(d), nil
}

// Dump writes the block descriptors of the current document as indented
// JSON.
func (app *Application) Dump(w io.Writer) error {
	data, err := DescriptorsJSON(block.Assemble(app.Document()))
	if err != nil {
		return &OperationError{Op: "dump", Target: app.opts.DocumentPath, Err: err}
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// DescriptorsJSON encodes the descriptors of blocks as
// {"blocks": [...]}, each block carrying its operations in canonical form.
func DescriptorsJSON(blocks []block.Block) ([]byte, error) {
	buf := []byte(`{"blocks":[]}`)
	for _, d := range block.Descriptors(blocks) {
		obj, err := descriptorJSON(d)
		if err != nil {
			return nil, fmt.Errorf("encoding block %d: %w", d.BlockIndex, err)
		}
		if buf, err = sjson.SetRawBytes(buf, "blocks.-1", obj); err != nil {
			return nil, fmt.Errorf("appending block %d: %w", d.BlockIndex, err)
		}
	}
	return buf, nil
}

func descriptorJSON(d block.Descriptor) ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"blockIndex", d.BlockIndex},
		{"maxBlockIndex", d.MaxBlockIndex},
		{"kind", string(d.Kind)},
		{"lineType", string(d.LineType)},
		{"isLast", d.IsLast},
		{"selectableUnitsOffset", d.SelectableUnitsOffset},
		{"selectableUnitsCount", d.SelectableUnitsCount},
	}

	obj := []byte(`{}`)
	var err error
	for _, f := range fields {
		if obj, err = sjson.SetBytes(obj, f.path, f.value); err != nil {
			return nil, err
		}
	}

	ops, err := delta.Marshal(delta.New(d.Ops...))
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(obj, "ops", []byte(gjson.GetBytes(ops, "ops").Raw))
}
