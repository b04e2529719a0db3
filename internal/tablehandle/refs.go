package tablehandle

import (
	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/view"
)

// Display-type attribute written on the two line indicators.
const (
	AttrDisplay         = "data-display"
	DisplayResizeHandle = "resize-handle"
	DisplayInsertTool   = "insert-tool"
)

// Refs is the context bag shared between the host component and the
// tracker. The host owns the elements and populates the fields as they
// mount; the tracker reads and writes through the pointer and treats any
// absent required field as "skip this event".
//
// Required fields: RowHandle, ColHandle, VerticalLine, HorizontalLine,
// Content. RowButtons and ColButtons are optional contextual button
// groups nested in the handles.
type Refs struct {
	RowHandle      element.Element
	ColHandle      element.Element
	VerticalLine   element.Element
	HorizontalLine element.Element
	Content        element.Element
	RowButtons     element.Element
	ColButtons     element.Element

	// HoverIndex is the cell under the pointer in whole-handle mode.
	HoverIndex view.CellIndex

	// LineHoverIndex is the boundary under the pointer in boundary mode.
	// Only one axis is meaningful at a time unless the pointer sits in a
	// corner; the inactive axis holds -1.
	LineHoverIndex view.CellIndex
}

// NewRefs creates an empty bag with both hover indices cleared.
func NewRefs() *Refs {
	return &Refs{
		HoverIndex:     view.NoCell,
		LineHoverIndex: view.NoCell,
	}
}

// ready returns true when every required element is present.
func (r *Refs) ready() bool {
	return r.RowHandle != nil && r.ColHandle != nil &&
		r.VerticalLine != nil && r.HorizontalLine != nil &&
		r.Content != nil
}
