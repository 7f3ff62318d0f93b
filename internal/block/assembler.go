package block

import (
	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/document"
)

// Assemble derives the ordered blocks of doc. It is a pure function of the
// document's delta: the same delta always yields identical blocks, and the
// operations of all blocks concatenated equal the delta's operations.
// An empty document has no blocks.
func Assemble(doc document.Document) []Block {
	lines := delta.SliceByLine(doc.Delta())
	if len(lines) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(lines))
	maxIndex := len(lines) - 1
	offset := 0
	for i, line := range lines {
		count := line.Length()
		blocks = append(blocks, newBlock(Descriptor{
			Kind:                  classify(line.Content()),
			BlockIndex:            i,
			MaxBlockIndex:         maxIndex,
			LineType:              line.LineType,
			Ops:                   line.Ops,
			IsLast:                i == maxIndex,
			SelectableUnitsOffset: offset,
			SelectableUnitsCount:  count,
		}))
		offset += count
	}
	return blocks
}

// Descriptors returns the descriptors of blocks in order.
func Descriptors(blocks []Block) []Descriptor {
	descs := make([]Descriptor, len(blocks))
	for i, b := range blocks {
		descs[i] = b.Descriptor()
	}
	return descs
}

// Assembler holds the blocks of one assembly pass over a document.
type Assembler struct {
	doc    document.Document
	blocks []Block
}

// NewAssembler assembles doc.
func NewAssembler(doc document.Document) *Assembler {
	return &Assembler{doc: doc, blocks: Assemble(doc)}
}

// Document returns the assembled document.
func (a *Assembler) Document() document.Document {
	return a.doc
}

// Blocks returns the assembled blocks.
func (a *Assembler) Blocks() []Block {
	blocks := make([]Block, len(a.blocks))
	copy(blocks, a.blocks)
	return blocks
}

// Len returns the number of blocks.
func (a *Assembler) Len() int {
	return len(a.blocks)
}

// ActiveBlock returns the block containing the selection start, or nil for
// an empty document. A selection at the end of the document belongs to the
// last block.
func (a *Assembler) ActiveBlock(sel document.Selection) Block {
	if len(a.blocks) == 0 {
		return nil
	}
	for _, b := range a.blocks {
		if sel.Start < b.End() {
			return b
		}
	}
	return a.blocks[len(a.blocks)-1]
}

// SelectedBlocks returns the blocks touched by sel in order. A collapsed
// selection touches its active block only.
func (a *Assembler) SelectedBlocks(sel document.Selection) []Block {
	if sel.Collapsed() {
		if b := a.ActiveBlock(sel); b != nil {
			return []Block{b}
		}
		return nil
	}
	var selected []Block
	for _, b := range a.blocks {
		if b.Start() < sel.End && b.End() > sel.Start {
			selected = append(selected, b)
		}
	}
	return selected
}
