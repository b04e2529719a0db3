package geometry

// Point is a screen coordinate.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height extent in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is a screen-space rectangle. Width and Height may be negative.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Left returns the left edge.
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Top returns the top edge.
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Size returns the normalized (non-negative) extent.
func (r Rect) Size() Size {
	return Size{Width: r.Right() - r.Left(), Height: r.Bottom() - r.Top()}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Contains returns true if the point lies inside the rectangle.
// Points on the left/top edges are inside; right/bottom edges are not.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Top() && p.Y < r.Bottom()
}

// Envelope returns the smallest rectangle covering every input rectangle.
// It reports ok=false when rects is empty.
func Envelope(rects ...Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	left := rects[0].Left()
	top := rects[0].Top()
	right := rects[0].Right()
	bottom := rects[0].Bottom()
	for _, r := range rects[1:] {
		if r.Left() < left {
			left = r.Left()
		}
		if r.Top() < top {
			top = r.Top()
		}
		if r.Right() > right {
			right = r.Right()
		}
		if r.Bottom() > bottom {
			bottom = r.Bottom()
		}
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}, true
}
