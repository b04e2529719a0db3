package view

import (
	"github.com/dshills/hoverline/internal/geometry"
)

// CellIndex identifies a table cell by row and column. Negative components
// mean "no cell".
type CellIndex struct {
	Row int
	Col int
}

// NoCell is the sentinel for "no cell hovered".
var NoCell = CellIndex{Row: -1, Col: -1}

// Valid returns true when both components are non-negative.
func (c CellIndex) Valid() bool {
	return c.Row >= 0 && c.Col >= 0
}

// Regions holds the screen rectangles resolved for a cell: the cell's own
// bounds plus the full row and column extents it belongs to.
type Regions struct {
	Cell geometry.Rect
	Row  geometry.Rect
	Col  geometry.Rect
}

// Range is a document position range. From == To is a collapsed caret.
type Range struct {
	From int
	To   int
}

// Collapsed returns true for a zero-width range.
func (r Range) Collapsed() bool {
	return r.From == r.To
}

// Selection is the set of ranges currently selected. Most selections hold
// a single range; multi-range selections occur with multiple cursors.
type Selection struct {
	Ranges []Range
}

// Caret returns the caret position when the selection is a single
// collapsed range.
func (s Selection) Caret() (int, bool) {
	if len(s.Ranges) != 1 || !s.Ranges[0].Collapsed() {
		return 0, false
	}
	return s.Ranges[0].From, true
}

// Eq reports deep equality of two selections.
func (s Selection) Eq(other Selection) bool {
	if len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i, r := range s.Ranges {
		if r != other.Ranges[i] {
			return false
		}
	}
	return true
}

// State is an immutable snapshot of document content and selection, used
// for change detection between evaluations. Doc is whatever fingerprint of
// the document content the host considers equality-defining.
type State struct {
	Doc       string
	Selection Selection
}

// Eq reports whether two snapshots have the same content and selection.
func (s State) Eq(other State) bool {
	return s.Doc == other.Doc && s.Selection.Eq(other.Selection)
}

// Block is a text block resolved from the selection's ancestry.
type Block interface {
	// Type returns the block's node type name.
	Type() string

	// TextBefore returns the block's inline content from its start up to
	// the caret, with non-text inline content replaced by placeholder.
	TextBefore(placeholder rune) string
}

// BlockMatcher decides whether a block is eligible for popup triggering.
type BlockMatcher func(b Block) bool

// ParagraphLike is the default BlockMatcher: plain textual blocks where a
// trigger character is expected to open a command menu.
func ParagraphLike(b Block) bool {
	switch b.Type() {
	case "paragraph", "heading":
		return true
	default:
		return false
	}
}

// View is the live editor surface. Implementations are queried on every
// event and must answer from current state; nothing is cached here.
type View interface {
	// Editable reports whether the surface accepts edits.
	Editable() bool

	// Focused reports whether the surface holds input focus.
	Focused() bool

	// Composing reports whether an IME composition is in progress.
	Composing() bool

	// State returns the current document/selection snapshot.
	State() State

	// SelectionRects returns one screen rectangle per selection range.
	SelectionRects() []geometry.Rect

	// CellAt hit-tests a screen point against the rendered table and
	// returns the cell under it.
	CellAt(p geometry.Point) (CellIndex, bool)

	// CellRegions resolves a cell index to its screen regions.
	CellRegions(idx CellIndex) (Regions, bool)

	// AncestorBlock returns the nearest ancestor block of the current
	// selection that matches m.
	AncestorBlock(m BlockMatcher) (Block, bool)

	// ContentRect returns the bounds of the editable content area.
	ContentRect() geometry.Rect
}

// TextBlock is a minimal Block over literal text. Hosts with richer node
// trees implement Block directly.
type TextBlock struct {
	// Kind is the node type name.
	Kind string

	// Text is the inline content before the caret. Runes equal to
	// InlineMarker are reported as the caller's placeholder.
	Text string
}

// InlineMarker stands for a non-text inline node in TextBlock.Text.
const InlineMarker = '\x00'

// Type returns the block's node type name.
func (b TextBlock) Type() string {
	return b.Kind
}

// TextBefore returns the content with inline markers replaced.
func (b TextBlock) TextBefore(placeholder rune) string {
	out := make([]rune, 0, len(b.Text))
	for _, r := range b.Text {
		if r == InlineMarker {
			r = placeholder
		}
		out = append(out, r)
	}
	return string(out)
}
