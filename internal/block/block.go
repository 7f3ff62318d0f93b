package block

import (
	"strings"

	"github.com/dshills/richsheet/internal/delta"
)

// Kind classifies a block.
type Kind string

// Block kinds.
const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Descriptor is the plain-data view of a block.
type Descriptor struct {
	// Kind is the block classification.
	Kind Kind

	// BlockIndex is the 0-based position among the blocks of one assembly.
	BlockIndex int

	// MaxBlockIndex is the index of the last block of the assembly.
	MaxBlockIndex int

	// LineType comes from the line's closing newline.
	LineType delta.LineType

	// Ops is the line's slice of the delta, closing newline included.
	// It must not be modified.
	Ops []delta.Op

	// IsLast is true for the final block only.
	IsLast bool

	// SelectableUnitsOffset is the document offset of the block's first character.
	SelectableUnitsOffset int

	// SelectableUnitsCount is the number of characters the block covers.
	SelectableUnitsCount int
}

// Block is a line-granular renderable unit: a *TextBlock or an *ImageBlock.
type Block interface {
	// Descriptor returns the block's plain-data view.
	Descriptor() Descriptor
	Kind() Kind
	Index() int
	LineType() delta.LineType
	Ops() []delta.Op
	IsFirst() bool
	IsLast() bool

	// Start and End bound the document characters covered by the block.
	Start() int
	End() int

	isBlock()
}

type base struct {
	desc Descriptor
}

func (b *base) Descriptor() Descriptor { return b.desc }
func (b *base) Kind() Kind { return b.desc.Kind }
func (b *base) Index() int { return b.desc.BlockIndex }
func (b *base) LineType() delta.LineType { return b.desc.LineType }
func (b *base) Ops() []delta.Op { return b.desc.Ops }
func (b *base) IsFirst() bool { return b.desc.BlockIndex == 0 }
func (b *base) IsLast() bool { return b.desc.IsLast }
func (b *base) Start() int { return b.desc.SelectableUnitsOffset }
func (b *base) End() int { return b.desc.SelectableUnitsOffset + b.desc.SelectableUnitsCount }
func (b *base) isBlock() {}

// content returns the block's operations without the closing newline.
func (b *base) content() []delta.Op {
	ops := b.desc.Ops
	if n := len(ops); n > 0 && ops[n-1].IsNewline() {
		return ops[:n-1]
	}
	return ops
}

// TextBlock is a line of text, possibly with inline images.
type TextBlock struct {
	base
}

// Runs returns the line's operations without the closing newline.
func (b *TextBlock) Runs() []delta.Op {
	return b.content()
}

// Text returns the line's text, images rendered as delta.ObjectReplacement.
func (b *TextBlock) Text() string {
	var sb strings.Builder
	for _, op := range b.content() {
		if op.IsImage() {
			sb.WriteRune(delta.ObjectReplacement)
			continue
		}
		sb.WriteString(op.Text())
	}
	return sb.String()
}

// ImageBlock is a line holding a single image.
type ImageBlock struct {
	base
}

// ImageOp returns the image operation with its attributes.
func (b *ImageBlock) ImageOp() delta.Op {
	return b.content()[0]
}

// Image returns the image description.
func (b *ImageBlock) Image() delta.Image {
	img, _ := b.ImageOp().Image()
	return img
}

// classify returns KindImage iff content is exactly one image operation.
// Attributes, including a stray line type on the image, are not consulted.
func classify(content []delta.Op) Kind {
	if len(content) == 1 && content[0].IsImage() {
		return KindImage
	}
	return KindText
}

func newBlock(desc Descriptor) Block {
	if desc.Kind == KindImage {
		return &ImageBlock{base{desc: desc}}
	}
	return &TextBlock{base{desc: desc}}
}
