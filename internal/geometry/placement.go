package geometry

// Placement names the preferred side and alignment of a floating element
// relative to its anchor rectangle.
type Placement uint8

const (
	// PlacementBottomStart places the element below the anchor, aligned to
	// the anchor's left edge.
	PlacementBottomStart Placement = iota

	// PlacementBottom places the element below the anchor, centered.
	PlacementBottom

	// PlacementBottomEnd places the element below the anchor, aligned to
	// the anchor's right edge.
	PlacementBottomEnd

	// PlacementTopStart places the element above the anchor, aligned to
	// the anchor's left edge.
	PlacementTopStart

	// PlacementTop places the element above the anchor, centered.
	PlacementTop

	// PlacementTopEnd places the element above the anchor, aligned to the
	// anchor's right edge.
	PlacementTopEnd
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlacementBottomStart:
		return "bottom-start"
	case PlacementBottom:
		return "bottom"
	case PlacementBottomEnd:
		return "bottom-end"
	case PlacementTopStart:
		return "top-start"
	case PlacementTop:
		return "top"
	case PlacementTopEnd:
		return "top-end"
	default:
		return "unknown"
	}
}

// IsTop returns true for the three top-side placements.
func (p Placement) IsTop() bool {
	return p == PlacementTopStart || p == PlacementTop || p == PlacementTopEnd
}

// Flipped returns the placement mirrored to the opposite side, preserving
// alignment.
func (p Placement) Flipped() Placement {
	switch p {
	case PlacementBottomStart:
		return PlacementTopStart
	case PlacementBottom:
		return PlacementTop
	case PlacementBottomEnd:
		return PlacementTopEnd
	case PlacementTopStart:
		return PlacementBottomStart
	case PlacementTop:
		return PlacementBottom
	case PlacementTopEnd:
		return PlacementBottomEnd
	default:
		return p
	}
}

// basePosition returns the un-shifted position for a placement.
func basePosition(anchor Rect, floating Size, p Placement) Point {
	var pos Point
	switch p {
	case PlacementBottomStart, PlacementTopStart:
		pos.X = anchor.Left()
	case PlacementBottom, PlacementTop:
		pos.X = anchor.Left() + (anchor.Size().Width-floating.Width)/2
	case PlacementBottomEnd, PlacementTopEnd:
		pos.X = anchor.Right() - floating.Width
	}
	if p.IsTop() {
		pos.Y = anchor.Top() - floating.Height
	} else {
		pos.Y = anchor.Bottom()
	}
	return pos
}
