package geometry

// State is the working state threaded through middleware during a solve.
// Middleware may adjust Pos and Placement; the remaining fields are inputs.
type State struct {
	Anchor    Rect
	Floating  Size
	Viewport  Rect
	Placement Placement
	Pos       Point

	// shift is the main-axis distance applied by Offset so far. Flip uses
	// it to re-apply the same gap on the opposite side.
	shift float64
}

// Middleware adjusts an in-progress position resolution.
type Middleware interface {
	// Name identifies the middleware in logs.
	Name() string

	// Run applies the adjustment to st.
	Run(st *State)
}

type offsetMiddleware struct {
	px float64
}

// Offset returns middleware that shifts the element px pixels along the
// main axis, away from the anchor.
func Offset(px float64) Middleware {
	return offsetMiddleware{px: px}
}

func (m offsetMiddleware) Name() string { return "offset" }

func (m offsetMiddleware) Run(st *State) {
	if st.Placement.IsTop() {
		st.Pos.Y -= m.px
	} else {
		st.Pos.Y += m.px
	}
	st.shift += m.px
}

type flipMiddleware struct{}

// Flip returns middleware that mirrors the placement to the opposite side
// when the element would overflow the viewport on its main axis and the
// opposite side has room.
func Flip() Middleware {
	return flipMiddleware{}
}

func (m flipMiddleware) Name() string { return "flip" }

func (m flipMiddleware) Run(st *State) {
	if st.Viewport.IsEmpty() {
		return
	}
	var overflows, fitsOpposite bool
	if st.Placement.IsTop() {
		overflows = st.Pos.Y < st.Viewport.Top()
		fitsOpposite = st.Anchor.Bottom()+st.shift+st.Floating.Height <= st.Viewport.Bottom()
	} else {
		overflows = st.Pos.Y+st.Floating.Height > st.Viewport.Bottom()
		fitsOpposite = st.Anchor.Top()-st.shift-st.Floating.Height >= st.Viewport.Top()
	}
	if !overflows || !fitsOpposite {
		return
	}
	st.Placement = st.Placement.Flipped()
	pos := basePosition(st.Anchor, st.Floating, st.Placement)
	if st.Placement.IsTop() {
		pos.Y -= st.shift
	} else {
		pos.Y += st.shift
	}
	st.Pos.Y = pos.Y
}
